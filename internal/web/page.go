package web

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Task Manager</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
form.inline { display: inline; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
</style>
</head>
<body>
<h1>Task Manager</h1>
<form method="post" action="/submit">
  {{- if .Editing}}
  <input type="hidden" name="edit_id" value="{{.EditID}}">
  <input type="hidden" name="edit_status" value="{{.EditStatus}}">
  {{- end}}
  <input type="text" name="title" placeholder="Title" value="{{.Form.Title}}">
  <input type="text" name="description" placeholder="Description" value="{{.Form.Description}}">
  <button type="submit">{{.SubmitLabel}}</button>
</form>
<table>
  <thead>
    <tr><th>ID</th><th>Title</th><th>Description</th><th>Status</th><th>Actions</th></tr>
  </thead>
  <tbody>
  {{- range .Tasks}}
    <tr>
      {{- range row .}}<td>{{.}}</td>{{end}}
      <td>
        <form class="inline" method="post" action="/tasks/{{.ID}}/edit"><button type="submit">Edit</button></form>
        <form class="inline" method="post" action="/tasks/{{.ID}}/delete"><button type="submit">Delete</button></form>
      </td>
    </tr>
  {{- end}}
  </tbody>
</table>
</body>
</html>
`
