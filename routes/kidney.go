/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/nephroclinic/clinic/kidney"
)

const (
	maxAnalyzeBodyBytes = 16 << 10

	msgInvalidAge = "برجاء إدخال عمر صحيح بين 1 و 120 سنة"
	msgInvalidSex = "برجاء اختيار النوع"
)

// kidneyField is one lab input on the analysis form.
type kidneyField struct {
	Test  kidney.Test
	Name  string
	Unit  string
	Value string
}

func kidneyFields(values map[string]string) []kidneyField {
	fields := make([]kidneyField, 0, len(kidney.Tests))
	for _, test := range kidney.Tests {
		fields = append(fields, kidneyField{
			Test:  test,
			Name:  test.DisplayName(),
			Unit:  test.Unit(),
			Value: values[string(test)],
		})
	}

	return fields
}

func setKidneyPageData(data template.Data) {
	setPageTitle(data, "تحليل وظائف الكلى")
	setClinicData(data)
	data["IsKidney"] = true
	data["MinAge"] = kidney.MinAge
	data["MaxAge"] = kidney.MaxAge
	data["Disclaimer"] = kidney.Disclaimer
}

// KidneyForm renders the empty lab interpreter form.
func KidneyForm(t template.Template, data template.Data) {
	setKidneyPageData(data)
	data["Fields"] = kidneyFields(nil)
	data["Age"] = ""
	data["Sex"] = ""

	t.HTML(http.StatusOK, "kidney")
}

// KidneyAnalyze interprets the submitted lab values and renders result cards.
// Invalid age or sex re-renders the form without results.
func KidneyAnalyze(c flamego.Context, t template.Template, data template.Data) {
	setKidneyPageData(data)

	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing kidney form", "error", err)
		data["Fields"] = kidneyFields(nil)
		data["Error"] = msgInvalidAge
		t.HTML(http.StatusBadRequest, "kidney")
		return
	}

	form := c.Request().Form

	values := make(map[string]string, len(kidney.Tests))
	for _, test := range kidney.Tests {
		values[string(test)] = form.Get(string(test))
	}

	data["Fields"] = kidneyFields(values)
	data["Age"] = form.Get("age")
	data["Sex"] = form.Get("sex")

	age, err := kidney.ParseAge(form.Get("age"))
	if err != nil {
		data["Error"] = msgInvalidAge
		t.HTML(http.StatusBadRequest, "kidney")
		return
	}

	sex, err := kidney.ParseSex(form.Get("sex"))
	if err != nil {
		data["Error"] = msgInvalidSex
		t.HTML(http.StatusBadRequest, "kidney")
		return
	}

	outcome, err := kidney.Analyze(kidney.Patient{Age: age, Sex: sex}, kidney.ParseReadings(values))
	if err != nil {
		logger.Error("Kidney analysis failed", "error", err)
		data["Error"] = msgInvalidAge
		t.HTML(http.StatusBadRequest, "kidney")
		return
	}

	logAnalysis(c, "form", outcome)

	data["Outcome"] = outcome
	data["HasResults"] = len(outcome.Results) > 0 || outcome.EGFR != nil

	t.HTML(http.StatusOK, "kidney")
}

// analyzeRequest is the JSON body accepted by the analysis API.
type analyzeRequest struct {
	Age    *float64           `json:"age"`
	Sex    string             `json:"sex"`
	Values map[string]any `json:"values"`
}

// KidneyAnalyzeAPI is the JSON form of the lab interpreter.
func KidneyAnalyzeAPI(c flamego.Context) {
	w := c.ResponseWriter()
	body := http.MaxBytesReader(w, c.Request().Request.Body, maxAnalyzeBodyBytes)

	var req analyzeRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Age == nil {
		writeJSONError(w, http.StatusBadRequest, "age is required")
		return
	}

	age, err := kidney.AgeFromNumber(*req.Age)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sex, err := kidney.ParseSex(req.Sex)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := kidney.Analyze(kidney.Patient{Age: age, Sex: sex}, kidney.ParseValues(req.Values))
	if err != nil {
		var ageErr *kidney.InvalidAgeError
		if errors.As(err, &ageErr) || errors.Is(err, kidney.ErrInvalidSex) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		logger.Error("Kidney analysis failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	logAnalysis(c, "api", outcome)
	writeJSON(w, http.StatusOK, outcome)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Error encoding JSON response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
