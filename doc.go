// Package abicodec provides a typed value codec for cross-boundary smart
// contract calls.
//
// Given a published interface description (ABI), it encodes in-memory values
// into packed binary call payloads, decodes returned buffers back into
// structured values, and accepts a human-readable literal syntax for
// constructing arguments and rendering results, serving command-line and
// automation tooling that calls contract functions without access to the
// original source types.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	abicodec/            Module documentation and overview
//	├── abi/             ABI document parsing into type descriptor trees
//	├── codec/           Packed binary encoding/decoding and layout analysis
//	├── literal/         Human-readable literal grammar (parse and print)
//	├── pipeline/        Argument and result pipelines, selector derivation
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Load an ABI and assemble a call:
//
//	doc, err := abi.Load(abiJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fn, err := doc.Function("transfer")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	call, err := pipeline.NewArgumentPipeline(fn).Assemble([]string{
//	    "0x" + strings.Repeat("ab", 32),
//	    "42",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// call.Selector and call.Payload go to the execution environment.
//
// Render a returned buffer:
//
//	out, err := pipeline.NewResultPipeline(fn).Render(resultBytes)
//
// Execution, signing and transport are external collaborators behind the
// pipeline.Performer interface; this library only transforms bytes.
package abicodec
