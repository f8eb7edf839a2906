package site

// Default templates and stylesheet written by `inkwell init`. They are a
// working starting point, not a theme: authors are expected to edit them.

const DefaultIndexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Site.Title}}</title>
  <link rel="stylesheet" href="style.css">
  <link rel="alternate" type="application/rss+xml" title="{{.Site.Title}}" href="{{.Site.BaseURL}}/feed.xml">
</head>
<body>
  <header>
    <h1>{{.Site.Title}}</h1>
    <p>{{.Site.Description}}</p>
  </header>
  <main>
    {{range .Posts}}
    <article>
      <h2><a href="posts/{{.ID}}.html">{{.Title}}</a></h2>
      {{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
      <time datetime="{{.Date}}">{{.DateReadable}}</time>
    </article>
    {{end}}
  </main>
  <nav>
    {{if gt .CurrentPage 1}}<a href="{{if eq .CurrentPage 2}}index.html{{else}}page{{sub .CurrentPage 1}}.html{{end}}">Newer</a>{{end}}
    <span>Page {{.CurrentPage}} of {{.TotalPages}}</span>
    {{if lt .CurrentPage .TotalPages}}<a href="page{{add .CurrentPage 1}}.html">Older</a>{{end}}
  </nav>
</body>
</html>
`

const DefaultPostTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Post.Title}} - {{.Site.Title}}</title>
  <link rel="stylesheet" href="../style.css">
</head>
<body>
  <header>
    <a href="../index.html">{{.Site.Title}}</a>
  </header>
  <article>
    <h1>{{.Post.Title}}</h1>
    {{if .Post.Subtitle}}<p>{{.Post.Subtitle}}</p>{{end}}
    <time datetime="{{.Post.Date}}">{{.Post.DateReadable}}</time>
    {{.Post.BodyHTML}}
  </article>
</body>
</html>
`

const DefaultStylesheet = `body {
  max-width: 42rem;
  margin: 0 auto;
  padding: 1rem;
  font-family: Georgia, serif;
  line-height: 1.6;
}

img {
  max-width: 100%;
}
`
