package notification

import (
	"fmt"
	"html"
	"strings"
)

// renderEmail produces the subject and HTML body for an event. Copy stays in
// Portuguese to match the product's existing emails.
func renderEmail(ev Event, frontendURL string) (subject, body string) {
	actor := html.EscapeString(ev.ActorName)
	title := html.EscapeString(ev.MediaTitle)

	switch ev.Kind {
	case KindFriendRequest:
		subject = "Nova Solicitação de Amizade - Filmes & Séries"
		body = wrap(fmt.Sprintf(`
			<h2>Nova Solicitação de Amizade!</h2>
			<p><strong>%s</strong> (%s) quer ser seu amigo no Filmes &amp; Séries!</p>
			<p>Aceite a solicitação para trocar sugestões de filmes.</p>
			<a href="%s/friends" class="button">Ver Solicitações</a>`,
			actor, html.EscapeString(ev.ActorEmail), frontendURL))

	case KindFriendAccepted:
		subject = "Solicitação Aceita - Filmes & Séries"
		body = wrap(fmt.Sprintf(`
			<h2>Solicitação de Amizade Aceita!</h2>
			<p><strong>%s</strong> aceitou sua solicitação de amizade!</p>
			<p>Agora vocês podem compartilhar coleções e trocar sugestões.</p>
			<a href="%s/friends" class="button">Ver Amigos</a>`,
			actor, frontendURL))

	case KindMediaSuggested:
		subject = fmt.Sprintf("%s sugeriu: %s", ev.ActorName, ev.MediaTitle)
		var msgBlock string
		if ev.Message != "" {
			msgBlock = fmt.Sprintf(`<div class="highlight"><p><strong>Mensagem de %s:</strong><br>"%s"</p></div>`,
				actor, html.EscapeString(ev.Message))
		}
		yearPart := ""
		if ev.MediaYear != "" {
			yearPart = fmt.Sprintf(" (%s)", html.EscapeString(ev.MediaYear))
		}
		body = wrap(fmt.Sprintf(`
			<h2>Nova Sugestão de Filme!</h2>
			<p><strong>%s</strong> sugeriu para você assistir:</p>
			<h3>%s%s</h3>
			%s
			<a href="%s/suggestions" class="button">Ver Sugestões</a>`,
			actor, title, yearPart, msgBlock, frontendURL))

	case KindSuggestionAccepted:
		subject = fmt.Sprintf("Sugestão Aceita: %s", ev.MediaTitle)
		body = wrap(fmt.Sprintf(`
			<h2>Sua Sugestão Foi Aceita!</h2>
			<p><strong>%s</strong> aceitou sua sugestão e adicionou <strong>"%s"</strong> à coleção!</p>
			<a href="%s/suggestions" class="button">Ver Sugestões</a>`,
			actor, title, frontendURL))
	}

	return subject, body
}

func wrap(content string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8"><style>
		body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif;
			background-color: #1a1a1a; color: #ffffff; line-height: 1.6; }
		.container { max-width: 600px; margin: 20px auto; padding: 20px;
			background-color: #2d2d2d; border-radius: 10px; }
		.header { text-align: center; padding: 20px 0; border-bottom: 2px solid #e50914; }
		.header h1 { margin: 0; color: #e50914; }
		.content { padding: 30px 0; }
		.button { display: inline-block; padding: 12px 30px; background: #e50914;
			color: white !important; text-decoration: none; border-radius: 5px;
			margin-top: 20px; font-weight: bold; }
		.highlight { background-color: rgba(229, 9, 20, 0.1);
			border-left: 3px solid #e50914; padding: 15px; margin: 20px 0; }
		</style></head><body><div class="container">
		<div class="header"><h1>🎬 Filmes &amp; Séries</h1></div>
		<div class="content">`)
	b.WriteString(content)
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}
