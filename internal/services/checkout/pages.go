package checkout

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"gift-autocheckout/internal/services/checkout/types"
)

// thanksPage feeds the confirmation template. When Total is empty the
// generic variant is rendered (no session details were available).
type thanksPage struct {
	Total     string
	Email     string
	Items     []receiptItem
	ReturnURL string
}

type receiptItem struct {
	Name     string
	Quantity int64
	Amount   string
}

type cancelPage struct {
	ReturnURL string
}

var thanksTemplate = template.Must(template.New("thanks").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Payment successful</title>
<style>
body{font-family:sans-serif;max-width:32rem;margin:4rem auto;padding:0 1rem;color:#222}
h1{color:#2e7d32}
a{color:#1565c0}
</style>
</head>
<body>
<h1>Thank you!</h1>
{{if .Total}}
<p>Your payment of <strong>{{.Total}}</strong> was received.</p>
{{if .Items}}
<ul>
{{range .Items}}<li>{{.Quantity}} x {{.Name}} ({{.Amount}})</li>
{{end}}</ul>
{{end}}
{{if .Email}}<p>A receipt was sent to {{.Email}}.</p>{{end}}
{{else}}
<p>Your payment was received.</p>
{{end}}
<p><a href="{{.ReturnURL}}">Back to the app</a></p>
</body>
</html>
`))

var cancelTemplate = template.Must(template.New("cancel").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Payment cancelled</title>
<style>
body{font-family:sans-serif;max-width:32rem;margin:4rem auto;padding:0 1rem;color:#222}
h1{color:#b71c1c}
a{color:#1565c0}
</style>
</head>
<body>
<h1>Payment cancelled</h1>
<p>No charge was made. You can close this page or try again.</p>
<p><a href="{{.ReturnURL}}">Back to the app</a></p>
</body>
</html>
`))

func newThanksPage(sess *types.Session, returnURL string) thanksPage {
	page := thanksPage{ReturnURL: returnURL}
	if sess == nil {
		return page
	}

	page.Total = formatAmount(sess.AmountTotal, sess.Currency)
	page.Email = sess.CustomerEmail
	for _, li := range sess.LineItems {
		page.Items = append(page.Items, receiptItem{
			Name:     li.Description,
			Quantity: li.Quantity,
			Amount:   formatAmount(li.AmountTotal, sess.Currency),
		})
	}

	return page
}

func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("rendering page", "template", tmpl.Name(), "error", err)
	}
}
