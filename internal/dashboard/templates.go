package dashboard

import "html/template"

// pageTemplates holds every dashboard page. Each page defines its own
// template name and wraps itself in the shared layout blocks.
var pageTemplates = template.Must(parsePages())

func parsePages() (*template.Template, error) {
	t := template.New("layout")
	for _, src := range []string{
		layoutTemplate, loginTemplate, registerTemplate, projectsTemplate,
		projectCreateTemplate, projectHomeTemplate, retrieveTemplate,
		filesTemplate, metadataTemplate, termsTemplate, termsResultTemplate,
		extractTemplate, extractImagesTemplate, wordsTemplate,
		wordsResultTemplate, recentTemplate, helpTemplate,
	} {
		if _, err := t.Parse(src); err != nil {
			return nil, err
		}
	}
	return t, nil
}

const layoutTemplate = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — LitScout</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; display: flex; min-height: 100vh; }
    nav.sidebar { width: 220px; background: #f1f3f5; padding: 1rem; }
    nav.sidebar.closed { display: none; }
    nav.sidebar a { display: block; padding: 0.3rem 0; color: #228be6; text-decoration: none; }
    main { flex: 1; padding: 1.5rem; }
    .flash-error { background: #ffe3e3; color: #c92a2a; padding: 0.6rem 1rem; border-radius: 6px; }
    .flash-message { background: #d3f9d8; color: #2b8a3e; padding: 0.6rem 1rem; border-radius: 6px; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #dee2e6; padding: 0.4rem 0.8rem; text-align: left; }
    form.inline { display: inline; }
  </style>
</head>
<body>{{end}}

{{define "sidebar"}}
<nav class="sidebar{{if not .SidebarOpen}} closed{{end}}">
  <h2>LitScout</h2>
  {{if .Email}}<p>{{.Email}}</p>{{end}}
  <a href="/projects">Projects</a>
  {{if .Project}}
  <a href="/projects/view/{{.Project}}/retrieve">Retrieve Articles</a>
  <a href="/projects/view/{{.Project}}/files">Downloaded Files</a>
  <a href="/projects/view/{{.Project}}/terms">Term Extraction</a>
  <a href="/projects/view/{{.Project}}/extract">PDF Extraction</a>
  <a href="/projects/view/{{.Project}}/words">Word Analysis</a>
  {{end}}
  <a href="/recent">Recent Searches</a>
  <a href="/help">Help</a>
  <form method="post" action="/prefs/sidebar"><button type="submit">Hide sidebar</button></form>
  <form method="post" action="/logout"><button type="submit">Logout</button></form>
</nav>
{{if not .SidebarOpen}}
<form method="post" action="/prefs/sidebar" style="position:fixed;top:0.5rem;left:0.5rem">
  <button type="submit">☰</button>
</form>
{{end}}
{{end}}

{{define "flash"}}
{{if .Error}}<p class="flash-error">{{.Error}}</p>{{end}}
{{if .Message}}<p class="flash-message">{{.Message}}</p>{{end}}
{{end}}

{{define "foot"}}
<script>
(function () {
  var scheme = location.protocol === "https:" ? "wss" : "ws";
  try {
    var ws = new WebSocket(scheme + "://" + location.host + "/ws/notifications");
    ws.onmessage = function (ev) {
      var n = JSON.parse(ev.data);
      var p = document.createElement("p");
      p.className = n.level === "error" ? "flash-error" : "flash-message";
      p.textContent = n.message;
      document.querySelector("main").prepend(p);
      setTimeout(function () { p.remove(); }, 5000);
    };
  } catch (e) { /* notifications are best effort */ }
})();
</script>
</body>
</html>{{end}}`

const loginTemplate = `{{define "login"}}{{template "head" .}}
<main>
  <h1>Login</h1>
  {{template "flash" .}}
  <form method="post" action="/login">
    <p><label>Email <input type="email" name="email" required></label></p>
    <p><label>Password <input type="password" name="password" required></label></p>
    <button type="submit">Login</button>
  </form>
  <p>No account? <a href="/register">Register</a></p>
</main>
{{template "foot" .}}{{end}}`

const registerTemplate = `{{define "register"}}{{template "head" .}}
<main>
  <h1>Register</h1>
  {{template "flash" .}}
  <form method="post" action="/register">
    <p><label>Name <input type="text" name="name" required></label></p>
    <p><label>Email <input type="email" name="email" required></label></p>
    <p><label>Password <input type="password" name="password" required minlength="8"></label></p>
    <button type="submit">Create account</button>
  </form>
  <p>Already registered? <a href="/login">Login</a></p>
</main>
{{template "foot" .}}{{end}}`

const projectsTemplate = `{{define "projects"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Projects</h1>
  {{template "flash" .}}
  <ul>
    {{range .Data}}
    <li><a href="/projects/view/{{.Name}}/">{{.Name}}</a></li>
    {{end}}
  </ul>
  <p><a href="/projects/create">Create a new project</a></p>
</main>
{{template "foot" .}}{{end}}`

const projectCreateTemplate = `{{define "project_create"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Create Project</h1>
  {{template "flash" .}}
  <form method="post" action="/projects/create">
    <p><label>Name <input type="text" name="name" required></label></p>
    <p><label>Description <textarea name="description"></textarea></label></p>
    <button type="submit">Create</button>
  </form>
</main>
{{template "foot" .}}{{end}}`

const projectHomeTemplate = `{{define "project_home"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>{{.Project}}</h1>
  {{template "flash" .}}
  <ul>
    <li><a href="/projects/view/{{.Project}}/retrieve">Retrieve articles</a></li>
    <li><a href="/projects/view/{{.Project}}/files">Downloaded files</a></li>
    <li><a href="/projects/view/{{.Project}}/terms">Term extraction</a></li>
    <li><a href="/projects/view/{{.Project}}/extract">Image / table extraction</a></li>
    <li><a href="/projects/view/{{.Project}}/words">Word analysis</a></li>
  </ul>
</main>
{{template "foot" .}}{{end}}`

const retrieveTemplate = `{{define "retrieve"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Retrieve Articles</h1>
  {{template "flash" .}}
  <form method="post" action="/projects/view/{{.Project}}/retrieve">
    <p><label>Source
      <select name="source">
        <option value="pubmed">PubMed</option>
        <option value="scholar">Google Scholar</option>
        <option value="both">Google Scholar and PubMed</option>
      </select>
    </label></p>
    <p><label>Search term 1 <input type="text" name="term1" required></label></p>
    <p><label>Operator <select name="operator1"><option></option><option>AND</option><option>OR</option></select></label>
       <label>Search term 2 <input type="text" name="term2"></label></p>
    <p><label>Operator <select name="operator2"><option></option><option>AND</option><option>OR</option></select></label>
       <label>Search term 3 <input type="text" name="term3"></label></p>
    <p><label>Country <input type="text" name="country"></label></p>
    <p><label>Patient cohort <input type="text" name="patient_cohort"></label></p>
    <p><label>Max PDFs (up to 20) <input type="number" name="max_pdfs" value="10" min="1"></label></p>
    <button type="submit">Search</button>
  </form>
</main>
{{template "foot" .}}{{end}}`

const filesTemplate = `{{define "files"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Downloaded Files</h1>
  {{template "flash" .}}
  {{$project := .Project}}
  {{range .Data}}
  <h2>{{.Source}}</h2>
  {{if .Records}}
  <table>
    {{range .Records}}
    <tr>
      <td>{{.Name}}</td>
      <td><a href="/projects/view/{{$project}}/files/download?file_path={{.Path}}">download</a></td>
      <td><a href="/projects/view/{{$project}}/files/metadata?file_path={{.Path}}">metadata</a></td>
      <td>
        {{if or (eq .Source "Included") (eq .Source "Excluded")}}
        <form class="inline" method="post" action="/projects/view/{{$project}}/files/undo">
          <input type="hidden" name="file_path" value="{{.Path}}">
          <button type="submit">undo</button>
        </form>
        {{else}}
        <form class="inline" method="post" action="/projects/view/{{$project}}/files/include">
          <input type="hidden" name="file_path" value="{{.Path}}">
          <input type="text" name="reason" placeholder="reason" required>
          <button type="submit">include</button>
        </form>
        <form class="inline" method="post" action="/projects/view/{{$project}}/files/exclude">
          <input type="hidden" name="file_path" value="{{.Path}}">
          <input type="text" name="reason" placeholder="reason" required>
          <button type="submit">exclude</button>
        </form>
        {{end}}
        <form class="inline" method="post" action="/projects/view/{{$project}}/files/delete">
          <input type="hidden" name="file_path" value="{{.Path}}">
          <button type="submit">delete</button>
        </form>
      </td>
    </tr>
    {{end}}
  </table>
  {{else}}<p>None yet.</p>{{end}}
  {{end}}
</main>
{{template "foot" .}}{{end}}`

const metadataTemplate = `{{define "metadata"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>{{.Title}}</h1>
  <pre>{{.Data}}</pre>
  <p><a href="/projects/view/{{.Project}}/files">Back to files</a></p>
</main>
{{template "foot" .}}{{end}}`

const termsTemplate = `{{define "terms"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Term Extraction</h1>
  {{template "flash" .}}
  <form method="post" action="/projects/view/{{.Project}}/terms" enctype="multipart/form-data">
    <p><label>PDF (max 10 MiB) <input type="file" name="file" accept=".pdf" required></label></p>
    <p><label>Article type
      <select name="article_type">
        <option>Surgical Device</option>
        <option>Diagnostic</option>
      </select>
    </label></p>
    <fieldset><legend>Surgical Device</legend>
      <p><label>Device name <input type="text" name="surgical_device_name"></label></p>
      <p><label>Technique <input type="text" name="enter_technique"></label></p>
    </fieldset>
    <fieldset><legend>Diagnostic</legend>
      <p><label>Test type <input type="text" name="diagnostic_test_type"></label></p>
      <p><label>Test name <input type="text" name="diagnostic_test_name"></label></p>
      <p><label>Sample type <input type="text" name="diagnostic_sample_type"></label></p>
      <p><label>Technique <input type="text" name="diagnostic_technique"></label></p>
    </fieldset>
    <button type="submit">Extract terms</button>
  </form>
</main>
{{template "foot" .}}{{end}}`

const termsResultTemplate = `{{define "terms_result"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Extracted Terms</h1>
  <table>
    <tr><th>Field</th><th>Value</th></tr>
    {{range .Data}}<tr><td>{{index . 0}}</td><td>{{index . 1}}</td></tr>{{end}}
  </table>
  <p><a href="/projects/view/{{.Project}}/terms">Extract another</a></p>
</main>
{{template "foot" .}}{{end}}`

const extractTemplate = `{{define "extract"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>PDF Extraction</h1>
  {{template "flash" .}}
  <form method="post" action="/projects/view/{{.Project}}/extract" enctype="multipart/form-data">
    <p><label>PDF (max 10 MiB) <input type="file" name="file" accept=".pdf" required></label></p>
    <p><label>Mode
      <select name="mode">
        <option value="images">Images</option>
        <option value="tables">Tables</option>
        <option value="combined">Images and tables</option>
      </select>
    </label></p>
    <button type="submit">Extract</button>
  </form>
</main>
{{template "foot" .}}{{end}}`

const extractImagesTemplate = `{{define "extract_images"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Extracted Images</h1>
  <ul>
    {{range .Data}}<li><a href="{{.}}">{{.}}</a></li>{{end}}
  </ul>
  <p><a href="/projects/view/{{.Project}}/extract">Extract another</a></p>
</main>
{{template "foot" .}}{{end}}`

const wordsTemplate = `{{define "words"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Word Analysis</h1>
  {{template "flash" .}}
  <form method="post" action="/projects/view/{{.Project}}/words">
    <p><label>PDF
      <select name="pdf_path">
        {{range .Data}}<option value="{{.Path}}">{{.Name}}</option>{{end}}
      </select>
    </label></p>
    <button type="submit">Analyze</button>
  </form>
</main>
{{template "foot" .}}{{end}}`

const wordsResultTemplate = `{{define "words_result"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Common Words</h1>
  <ul>
    {{range .Data}}<li>{{.}}</li>{{end}}
  </ul>
  <p><a href="/projects/view/{{.Project}}/words">Analyze another</a></p>
</main>
{{template "foot" .}}{{end}}`

const recentTemplate = `{{define "recent"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  <h1>Recent Searches</h1>
  {{if .Data}}
  <table>
    <tr><th>When</th><th>Project</th><th>Source</th><th>Terms</th><th>Retrieved</th><th>Failed</th></tr>
    {{range .Data}}
    <tr>
      <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
      <td>{{.Project}}</td>
      <td>{{.Source}}</td>
      <td>{{range $i, $t := .Terms}}{{if $i}}, {{end}}{{$t}}{{end}}</td>
      <td>{{.SuccessCount}}</td>
      <td>{{.ErrorCount}}</td>
    </tr>
    {{end}}
  </table>
  {{else}}<p>No searches recorded yet.</p>{{end}}
</main>
{{template "foot" .}}{{end}}`

const helpTemplate = `{{define "help"}}{{template "head" .}}
{{template "sidebar" .}}
<main>
  {{.Data}}
</main>
{{template "foot" .}}{{end}}`
