package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func shell() templ.Component {
	return templ.Raw(`<header class="top"><h1>Tasks</h1></header>` +
		`<main id="main"></main>` +
		`<aside class="sidebar"></aside>`)
}

func taskList(tasks []Task) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="tasks">`); err != nil {
			return err
		}
		for _, t := range tasks {
			class := "task"
			if t.Done {
				class += " done"
			}
			_, err := fmt.Fprintf(w,
				`<li class="%s"><a hx-get="/task/%s" hx-target="#main">%s</a></li>`,
				class, templ.EscapeString(t.ID), templ.EscapeString(t.Title))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

func taskDetail(t Task) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		status := "open"
		if t.Done {
			status = "done"
		}
		_, err := fmt.Fprintf(w,
			`<article class="task-detail"><h2>%s</h2><p>Status: %s</p>`+
				`<button hx-delete="/_r/main" hx-target="#main">Close</button></article>`,
			templ.EscapeString(t.Title), status)
		return err
	})
}
