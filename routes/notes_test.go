// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	htmltemplate "html/template"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nephroclinic/clinic/db"
	"github.com/nephroclinic/clinic/utils"
)

func newNotesTestApp() *routeTestApp {
	app := newRouteTestApp()
	app.Get("/notes", ListNotes)
	app.Get("/notes/new", NewNoteForm)
	app.Post("/notes", CreateNote)
	app.Get("/notes/{id}", ViewNote)
	app.Get("/notes/{id}/edit", EditNoteForm)
	app.Post("/notes/{id}/edit", UpdateNote)
	app.Post("/notes/{id}/delete", DeleteNote)

	return app
}

func TestNoteTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		content string
		want    string
	}{
		{name: "explicit title", title: "  Rounds  ", content: "* Headline", want: "Rounds"},
		{name: "title directive", content: "#+TITLE: Dialysis plan\n* Other", want: "Dialysis plan"},
		{name: "headline", content: "some text\n* Follow up list\n", want: "Follow up list"},
		{name: "fallback", content: "plain text", want: utils.DefaultNoteTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := noteTitle(tt.title, tt.content); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestCreateNote(t *testing.T) {
	noteID := uuid.New()

	var gotAuthor, gotTitle, gotContent string

	original := createNoteFn
	createNoteFn = func(_ context.Context, authorID, title, content string) (*db.Note, error) {
		gotAuthor, gotTitle, gotContent = authorID, title, content
		return &db.Note{ID: noteID, Title: title, Content: content}, nil
	}

	t.Cleanup(func() {
		createNoteFn = original
	})

	app := newNotesTestApp()
	userID := setStaffSession(app.session)

	rec := performFormPOST(t, app, "/notes", url.Values{"title": {""}, "content": {"* Potassium follow up\nCheck labs"}}, nil)

	assertRedirect(t, rec, "/notes/"+noteID.String())
	assertFlash(t, app.session, FlashSuccess, "تم حفظ الملاحظة")

	if gotAuthor != userID || gotTitle != "Potassium follow up" || !strings.Contains(gotContent, "Check labs") {
		t.Fatalf("unexpected note input: author=%q title=%q content=%q", gotAuthor, gotTitle, gotContent)
	}

	createNoteFn = func(context.Context, string, string, string) (*db.Note, error) {
		return nil, errTestBoom
	}

	app = newNotesTestApp()
	rec = performFormPOST(t, app, "/notes", url.Values{"title": {"x"}}, nil)

	assertRedirect(t, rec, "/notes/new")
	assertFlash(t, app.session, FlashError, "تعذر حفظ الملاحظة")
}

//nolint:paralleltest // Overrides package-level seams.
func TestViewNote(t *testing.T) {
	note := &db.Note{ID: uuid.New(), Title: "Rounds", Content: "* Rounds\nSee [[https://example.com][guide]]"}

	original := getNoteFn
	getNoteFn = func(_ context.Context, id string) (*db.Note, error) {
		if id == note.ID.String() {
			return note, nil
		}
		return nil, db.ErrNoteNotFound
	}

	t.Cleanup(func() {
		getNoteFn = original
	})

	app := newNotesTestApp()
	rec := performGET(t, app, "/notes/"+uuid.NewString())

	assertRedirect(t, rec, "/notes")
	assertFlash(t, app.session, FlashError, "الملاحظة غير موجودة")

	app = newNotesTestApp()
	rec = performGET(t, app, "/notes/"+note.ID.String())

	if rec.Code != http.StatusOK || app.rendered.name != "note_view" {
		t.Fatalf("unexpected render: status=%d template=%q", rec.Code, app.rendered.name)
	}

	body, ok := app.data["NoteHTML"].(htmltemplate.HTML)
	if !ok || !strings.Contains(string(body), "https://example.com") {
		t.Fatalf("expected rendered note HTML, got %#v", app.data["NoteHTML"])
	}

	app = newNotesTestApp()
	performGET(t, app, "/notes/"+note.ID.String()+"/edit")

	if app.rendered.name != "note_form" || app.data["FormAction"] != "/notes/"+note.ID.String()+"/edit" {
		t.Fatalf("unexpected edit form: template=%q action=%#v", app.rendered.name, app.data["FormAction"])
	}
}

//nolint:paralleltest // Overrides package-level seams.
func TestUpdateAndDeleteNote(t *testing.T) {
	originalUpdate := updateNoteFn
	originalDelete := deleteNoteFn

	updateNoteFn = func(_ context.Context, id, _, _ string) error {
		if id == "missing" {
			return db.ErrNoteNotFound
		}
		return nil
	}
	deleteNoteFn = func(_ context.Context, id string) error {
		if id == "missing" {
			return db.ErrNoteNotFound
		}
		return nil
	}

	t.Cleanup(func() {
		updateNoteFn = originalUpdate
		deleteNoteFn = originalDelete
	})

	app := newNotesTestApp()
	rec := performFormPOST(t, app, "/notes/n1/edit", url.Values{"title": {"Rounds"}, "content": {"text"}}, nil)
	assertRedirect(t, rec, "/notes/n1")
	assertFlash(t, app.session, FlashSuccess, "تم حفظ الملاحظة")

	app = newNotesTestApp()
	rec = performFormPOST(t, app, "/notes/missing/edit", url.Values{"title": {"Rounds"}}, nil)
	assertRedirect(t, rec, "/notes")
	assertFlash(t, app.session, FlashError, "الملاحظة غير موجودة")

	app = newNotesTestApp()
	rec = performFormPOST(t, app, "/notes/n1/delete", url.Values{}, nil)
	assertRedirect(t, rec, "/notes")
	assertFlash(t, app.session, FlashSuccess, "تم حذف الملاحظة")

	app = newNotesTestApp()
	rec = performFormPOST(t, app, "/notes/missing/delete", url.Values{}, nil)
	assertRedirect(t, rec, "/notes/missing")
	assertFlash(t, app.session, FlashError, "تعذر حذف الملاحظة")
}

//nolint:paralleltest // Overrides package-level seams.
func TestListNotesPassesQuery(t *testing.T) {
	var gotQuery string

	original := listNotesFn
	listNotesFn = func(_ context.Context, query string) ([]db.Note, error) {
		gotQuery = query
		return []db.Note{{ID: uuid.New(), Title: "Rounds"}}, nil
	}

	t.Cleanup(func() {
		listNotesFn = original
	})

	app := newNotesTestApp()
	rec := performGET(t, app, "/notes?q=+rounds+")

	if rec.Code != http.StatusOK || app.rendered.name != "notes_list" {
		t.Fatalf("unexpected render: status=%d template=%q", rec.Code, app.rendered.name)
	}
	if gotQuery != "rounds" || app.data["Query"] != "rounds" {
		t.Fatalf("expected trimmed query, got %q", gotQuery)
	}
}
