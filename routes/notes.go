/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	htmltemplate "html/template"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/db"
	"github.com/nephroclinic/clinic/utils"
)

var (
	listNotesFn    = db.ListNotes
	getNoteFn      = db.GetNote
	createNoteFn   = db.CreateNote
	updateNoteFn   = db.UpdateNote
	deleteNoteFn   = db.DeleteNote
	renderNoteHTML = utils.ParseOrgToHTML
)

func noteTitle(title, content string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	return utils.ExtractTitle(content)
}

// ListNotes renders staff notes, optionally filtered by a search query.
func ListNotes(c flamego.Context, t template.Template, data template.Data) {
	setPageTitle(data, "الملاحظات")
	data["IsNotes"] = true

	query := strings.TrimSpace(c.Query("q"))
	data["Query"] = query

	notes, err := listNotesFn(c.Request().Context(), query)
	if err != nil {
		logger.Error("Error fetching notes", "error", err)
		data["Error"] = "تعذر تحميل الملاحظات"
	} else {
		data["Notes"] = notes
	}

	t.HTML(http.StatusOK, "notes_list")
}

// NewNoteForm renders the empty note editor.
func NewNoteForm(t template.Template, data template.Data) {
	setPageTitle(data, "ملاحظة جديدة")
	data["IsNotes"] = true
	data["FormAction"] = "/notes"

	t.HTML(http.StatusOK, "note_form")
}

// CreateNote stores a new note written by the signed-in staff member.
func CreateNote(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "تعذر قراءة البيانات")
		c.Redirect("/notes/new", http.StatusSeeOther)
		return
	}

	form := c.Request().Form
	content := form.Get("content")
	authorID, _ := getSessionUserID(s)

	note, err := createNoteFn(c.Request().Context(), authorID, noteTitle(form.Get("title"), content), content)
	if err != nil {
		logger.Error("Error creating note", "error", err)
		SetErrorFlash(s, "تعذر حفظ الملاحظة")
		c.Redirect("/notes/new", http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, "تم حفظ الملاحظة")
	c.Redirect("/notes/"+note.ID.String(), http.StatusSeeOther)
}

// ViewNote renders a note's org-mode content as HTML.
func ViewNote(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	note, err := getNoteFn(c.Request().Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, db.ErrNoteNotFound) {
			logger.Error("Error fetching note", "error", err)
		}
		SetErrorFlash(s, "الملاحظة غير موجودة")
		c.Redirect("/notes", http.StatusSeeOther)
		return
	}

	setPageTitle(data, note.Title)
	data["IsNotes"] = true
	data["Note"] = note

	body, err := renderNoteHTML(note.Content)
	if err != nil {
		logger.Error("Error rendering note", "note_id", note.ID, "error", err)
		data["Error"] = "تعذر عرض محتوى الملاحظة"
	} else {
		data["NoteHTML"] = htmltemplate.HTML(body) //nolint:gosec // HTML comes from trusted org parser output.
	}

	t.HTML(http.StatusOK, "note_view")
}

// EditNoteForm renders the editor for an existing note.
func EditNoteForm(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	note, err := getNoteFn(c.Request().Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, db.ErrNoteNotFound) {
			logger.Error("Error fetching note", "error", err)
		}
		SetErrorFlash(s, "الملاحظة غير موجودة")
		c.Redirect("/notes", http.StatusSeeOther)
		return
	}

	setPageTitle(data, "تعديل: "+note.Title)
	data["IsNotes"] = true
	data["Note"] = note
	data["FormAction"] = "/notes/" + note.ID.String() + "/edit"

	t.HTML(http.StatusOK, "note_form")
}

// UpdateNote saves an edited note.
func UpdateNote(c flamego.Context, s session.Session) {
	id := c.Param("id")
	back := "/notes/" + id

	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "تعذر قراءة البيانات")
		c.Redirect(back+"/edit", http.StatusSeeOther)
		return
	}

	form := c.Request().Form
	content := form.Get("content")

	if err := updateNoteFn(c.Request().Context(), id, noteTitle(form.Get("title"), content), content); err != nil {
		if errors.Is(err, db.ErrNoteNotFound) {
			SetErrorFlash(s, "الملاحظة غير موجودة")
			c.Redirect("/notes", http.StatusSeeOther)
			return
		}

		logger.Error("Error updating note", "note_id", id, "error", err)
		SetErrorFlash(s, "تعذر حفظ الملاحظة")
		c.Redirect(back+"/edit", http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, "تم حفظ الملاحظة")
	c.Redirect(back, http.StatusSeeOther)
}

// DeleteNote removes a note.
func DeleteNote(c flamego.Context, s session.Session) {
	id := c.Param("id")

	if err := deleteNoteFn(c.Request().Context(), id); err != nil {
		if !errors.Is(err, db.ErrNoteNotFound) {
			logger.Error("Error deleting note", "note_id", id, "error", err)
		}
		SetErrorFlash(s, "تعذر حذف الملاحظة")
		c.Redirect("/notes/"+id, http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, "تم حذف الملاحظة")
	c.Redirect("/notes", http.StatusSeeOther)
}
