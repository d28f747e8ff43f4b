package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type AnalyzeRequest struct {
	CVDocumentID   string `json:"cv_document_id" validate:"required,uuid"`
	JobDescription string `json:"job_description" validate:"required"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AnalyzeTextRequest struct {
	CVText         string `json:"cv_text"`
	JobDescription string `json:"job_description"`
}

type AnalyzeTextResponse struct {
	Analysis *AnalysisResult `json:"analysis"`
	Warnings []string        `json:"warnings,omitempty"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorKind    *string         `json:"error_kind,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	ErrorHint    *string         `json:"error_hint,omitempty"`
}

type VideosResponse struct {
	Skill       string        `json:"skill,omitempty"`
	SearchQuery string        `json:"search_query"`
	Videos      []VideoResult `json:"videos"`
}
