// Package view renders the HTML preview pages.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// MessageParams describes one rendered chat message.
type MessageParams struct {
	Role string
	HTML string
}

// PageParams describes the preview page.
type PageParams struct {
	Title     string
	Text      string
	Messages  []MessageParams
	RequestID string
}

// Message mounts already sanitized markup inside the message container. The
// markup is written as is, so it must come from the renderer.
func Message(p MessageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		role := p.Role
		if role == "" {
			role = "assistant"
		}
		if _, err := fmt.Fprintf(w, `<div class="message message-%s"><div class="markdown-content">`, templ.EscapeString(role)); err != nil {
			return err
		}
		if err := templ.Raw(p.HTML).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// Page renders the full preview document with a form to submit new text.
func Page(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := p.Title
		if title == "" {
			title = "chatmark preview"
		}

		var head strings.Builder
		head.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		head.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if p.RequestID != "" {
			head.WriteString(`<meta name="request-id" content="` + templ.EscapeString(p.RequestID) + `">`)
		}
		head.WriteString(`<title>` + templ.EscapeString(title) + `</title></head><body><main>`)
		head.WriteString(`<form method="get" action="/preview"><textarea name="text" rows="8">`)
		head.WriteString(templ.EscapeString(p.Text))
		head.WriteString(`</textarea><button type="submit">Preview</button></form>`)
		head.WriteString(`<section class="messages">`)
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}

		for _, m := range p.Messages {
			if err := Message(m).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</section></main></body></html>`)
		return err
	})
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
