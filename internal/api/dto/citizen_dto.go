package dto

import "github.com/dinhviettung/citizen-registry/internal/domain"

// AddCitizenRequest payload for POST /api/citizens.
type AddCitizenRequest struct {
	NationalID        string `json:"nationalId"`
	FullName          string `json:"fullName"`
	DateOfBirth       string `json:"dateOfBirth"`
	Gender            string `json:"gender"`
	AreaName          string `json:"areaName"`
	AreaType          string `json:"areaType"`
	HouseholdAddress  string `json:"householdAddress"`
	IsHead            bool   `json:"isHead"`
	HasCriminalRecord bool   `json:"hasCriminalRecord"`
	SetWanted         bool   `json:"setWanted"`
	SetQuanChe        bool   `json:"setQuanChe"`
}

// AddCitizenResponse wraps the procedure result row.
type AddCitizenResponse struct {
	Message string        `json:"message"`
	Data    domain.Record `json:"data"`
}

// DeleteCitizenResponse reports a processed delete. Meta is set when the procedure
// confirmed the deletion, Success otherwise.
type DeleteCitizenResponse struct {
	Message string        `json:"message"`
	Meta    domain.Record `json:"meta,omitempty"`
	Success bool          `json:"success,omitempty"`
}
