package openapi

import "github.com/reoring/godos/internal/ordered"

// Version is the OpenAPI version the generator emits.
const Version = "3.0.0"

// Info is the document's info object.
type Info struct {
	Version     string   `json:"version"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Contact     *Contact `json:"contact,omitempty"`
	Logo        *Logo    `json:"x-logo,omitempty"`
}

// Contact identifies the team behind the API.
type Contact struct {
	Name  string `json:"name" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Email string `json:"email" validate:"required,email"`
}

// Logo is the ReDoc x-logo extension.
type Logo struct {
	URL             string `json:"url"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	AltText         string `json:"altText,omitempty"`
	Href            string `json:"href,omitempty"`
}

// Tag groups operations.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Ref is a bare reference object.
type Ref struct {
	Ref string `json:"$ref"`
}

// Property is a schema for one field. The JSON key order follows the field order.
type Property struct {
	OneOf       []*Property `json:"oneOf,omitempty"`
	Ref         string      `json:"$ref,omitempty"`
	Type        string      `json:"type,omitempty"`
	Nullable    *bool       `json:"nullable,omitempty"`
	Description string      `json:"description,omitempty"`
	AllOf       []*Property `json:"allOf,omitempty"`
	Items       *Property   `json:"items,omitempty"`
}

// Component is a named object schema under components.schemas.
type Component struct {
	Required   []string                `json:"required,omitempty"`
	Properties *ordered.Map[*Property] `json:"properties"`
	Type       string                  `json:"type"`
}

// MediaType wraps the schema of a body.
type MediaType struct {
	Schema Ref `json:"schema"`
}

// RequestBody is a reusable request body under components.requestBodies.
type RequestBody struct {
	Content  map[string]MediaType `json:"content"`
	Required bool                 `json:"required"`
}

// Response describes one status code of an operation.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// Operation is one method of a path item.
type Operation struct {
	Responses   *ordered.Map[*Response] `json:"responses"`
	OperationID string                  `json:"operationId"`
	Tags        []string                `json:"tags"`
	RequestBody *Ref                    `json:"requestBody,omitempty"`
}

// Components holds the reusable parts of the document.
type Components struct {
	Responses     *ordered.Map[*Response]    `json:"responses"`
	RequestBodies *ordered.Map[*RequestBody] `json:"requestBodies"`
	Schemas       *ordered.Map[*Component]   `json:"schemas"`
}

const jsonMediaType = "application/json"

func jsonContent(ref string) map[string]MediaType {
	return map[string]MediaType{jsonMediaType: {Schema: Ref{Ref: ref}}}
}

func schemaRef(name string) string      { return "#/components/schemas/" + name }
func requestBodyRef(name string) string { return "#/components/requestBodies/" + name }
