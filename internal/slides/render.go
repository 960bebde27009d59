package slides

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
)

var deckTemplate = template.Must(template.New("deck").Parse(deckHTML))

// Render writes deck as a self-contained HTML document.
func Render(w io.Writer, deck Deck) error {
	if err := deckTemplate.Execute(w, deck); err != nil {
		return fmt.Errorf("render deck: %w", err)
	}
	return nil
}

// LoadBufferImage reads the image at path as a data URI.
// A missing file or an empty path yields an empty URL and no error.
func LoadBufferImage(path string) (template.URL, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read buffer image: %w", err)
	}

	mime := http.DetectContentType(data)
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return template.URL(uri), nil
}

const deckHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  html, body { margin: 0; height: 100%; font-family: system-ui, sans-serif; background: #111; }
  .slide { display: none; box-sizing: border-box; width: 100vw; height: 100vh; padding: 4vh 5vw;
           position: relative; background: #fff; color: #222; flex-direction: column; }
  .slide:target { display: flex; }
  body:not(:has(.slide:target)) #slide-1 { display: flex; }
  .title { justify-content: center; align-items: center; text-align: center; }
  .title h1 { font-size: 8vh; margin: 0 0 2vh; }
  .title p { font-size: 4vh; color: #555; }
  .index h2 { font-size: 4.5vh; margin: 0 0 2vh; }
  .tiles { display: grid; grid-template-columns: repeat(6, 1fr); gap: 1.5vh 1vw; }
  .tile { display: flex; flex-direction: column; justify-content: center; align-items: center;
          height: 10vh; border-radius: 1.5vh; color: #fff; font-weight: bold; text-decoration: none; font-size: 2.2vh; }
  .header { font-size: 3.2vh; color: #555; }
  .prompt { font-size: 6vh; font-weight: bold; margin: 2vh 0 4vh; }
  .options { display: grid; grid-template-columns: 1fr 1fr; gap: 3vh 4vw; font-size: 5vh; font-weight: bold; }
  .button { position: absolute; padding: 1.2vh 2vw; border-radius: 1.2vh; text-decoration: none; font-weight: bold; }
  .reveal { top: 3vh; right: 4vw; background: #287EF3; color: #fff; font-size: 3vh; }
  .back { bottom: 4vh; right: 4vw; background: #c8c8c8; color: #323232; font-size: 4vh; }
  .answer-key { font-size: 9vh; font-weight: bold; color: #00AA00; }
  .label { font-size: 4vh; margin-top: 3vh; }
  .explanation { font-size: 7vh; font-weight: bold; }
  .buffer img { position: absolute; inset: 0; width: 100%; height: 100%; object-fit: cover; }
</style>
</head>
<body>
{{- range .Slides}}
<section class="slide {{.Kind}}" id="slide-{{.Number}}">
{{- if eq .Kind "title"}}
  <h1>{{.Title}}</h1>
  <p>{{.Subtitle}}</p>
{{- else if eq .Kind "index"}}
  <h2>{{.Title}}</h2>
  <div class="tiles">
  {{- range .Tiles}}
    <a class="tile" style="background: {{.Color}}" href="#slide-{{.Link}}"><span>{{.Label}}</span><span>{{.Group}}</span></a>
  {{- end}}
  </div>
{{- else if eq .Kind "question"}}
  <div class="header">{{.Header}}</div>
  <div class="prompt">{{.Prompt}}</div>
  <div class="options">
  {{- range .Options}}
    <div>({{.Key}}) {{.Text}}</div>
  {{- end}}
  </div>
  <a class="button reveal" href="#slide-{{.AnswerLink}}">📜 Show answer</a>
{{- else if eq .Kind "answer"}}
  <div class="answer-key">Correct answer: {{.Answer}}</div>
  <div class="label">💡 Explanation:</div>
  <div class="explanation">{{.Explanation}}</div>
  <a class="button back" href="#slide-2">🏠 Back to index</a>
{{- else}}
  {{- if .Image}}<img src="{{.Image}}" alt="">{{end}}
  <a class="button back" href="#slide-2">🏠 Back to index</a>
{{- end}}
</section>
{{- end}}
</body>
</html>
`
