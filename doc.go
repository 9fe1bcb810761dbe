package godos

// Package godos turns one declarative field schema into three behaviors:
//
// - ValidateInput checks an inbound JSON payload and reports what is wrong with it
// - CreateOutput masks an outbound payload down to the fields a status code declares
// - package openapi derives an OpenAPI 3.0 document from the same schema objects
//
// Design policy:
// - Schemas are immutable trees of *Prop and *Choice; build them once and share them.
// - Keep the engines free of web frameworks; adapters live under middleware/.
// - Place validators under validators/, request decoding under source/, and the CLI under cmd/godos.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  dog := godos.NewFields(godos.SchemaOf(
//      godos.Field("name", godos.String(godos.Description("The dog's name."), godos.Required())),
//      godos.Field("breed", godos.String(godos.Description("The dog's breed."))),
//  ))
//
//  status, report := godos.ValidateInput(body, dog.Specialize("name"))
//  status, masked, err := godos.CreateOutput(http.StatusOK, raw, godos.OutputSchema{http.StatusOK: dog.All()})
