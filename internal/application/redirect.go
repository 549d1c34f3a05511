package application

import (
	"bytes"
	"fmt"
	"html/template"
)

// RedirectPage is the payload produced by a successful purchase initiation:
// an auto-submitting form POST to the client's return_url. The token and od_id
// travel as hidden form fields, never as query parameters, so they cannot leak
// through access logs or Referer headers.
type RedirectPage struct {
	ReturnURL   string
	AccessToken string
	OdID        string
}

var redirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Redirecting...</title>
  </head>
  <body onload="document.forms[0].submit()">
    <form action="{{.ReturnURL}}" method="POST">
      <input type="hidden" name="access_token" value="{{.AccessToken}}">
      <input type="hidden" name="od_id" value="{{.OdID}}">
    </form>
  </body>
</html>
`))

// Render produces the redirect HTML. html/template applies contextual
// attribute escaping to all three values.
func (p *RedirectPage) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := redirectTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render redirect form: %w", err)
	}
	return buf.Bytes(), nil
}
