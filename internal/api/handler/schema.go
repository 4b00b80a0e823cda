package handler

import (
	"bytes"
	"encoding/json"
	"errors"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,min=3,max=200,email"`
	Password string `json:"password" validate:"required,min=6,max=200"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,min=3,max=200,email"`
	Password string `json:"password" validate:"required,min=6,max=200"`
}

// todoRequest is the body of POST /todos and PUT /todos/:id. Optional fields
// are pointers so an update can tell "omitted" from "zero".
type todoRequest struct {
	Name       string    `json:"name"       validate:"required,min=3,max=200"`
	Author     *string   `json:"author"     validate:"omitempty,min=3,max=30"`
	UID        *string   `json:"uid"`
	IsComplete *bool     `json:"isComplete"`
	Date       *jsonDate `json:"date"`
}

// nullErrors lists the optional todo fields that may be omitted but never
// sent as null, with the message reported for each.
var nullErrors = map[string]error{
	"author":     errors.New("author must be a string"),
	"uid":        errors.New("uid must be a string"),
	"isComplete": errors.New("isComplete must be a boolean"),
	"date":       errInvalidDate,
}

var jsonNull = []byte("null")

func (r *todoRequest) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for name, value := range fields {
		if err, ok := nullErrors[name]; ok && bytes.Equal(bytes.TrimSpace(value), jsonNull) {
			return err
		}
	}

	type plain todoRequest
	return json.Unmarshal(b, (*plain)(r))
}
