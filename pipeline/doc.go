// Package pipeline composes the literal grammar and the binary codec into
// call-ready payloads.
//
// ArgumentPipeline runs literal → Value → wire bytes for every declared
// parameter in order and prefixes the function selector; ResultPipeline runs
// wire bytes → Value → literal for the declared return type. The finished
// CallData crosses the system boundary through the Performer interface;
// execution, transport and authorization live entirely on the other side.
//
//	literals ─→ [ArgumentPipeline] ─→ CallData ─→ Performer ─→ bytes
//	rendered ←─ [ResultPipeline]  ←──────────────────────────────┘
//
// Pipelines are stateless per invocation and safe to run concurrently, each
// call owning its own buffers.
package pipeline
