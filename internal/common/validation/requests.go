// internal/common/validation/requests.go
package validation

// ProductRequestSchema validates the body of POST /api/substitute.
var ProductRequestSchema = MustCompileJSON(`{
  "type": "object",
  "required": ["productId"],
  "properties": {
    "productId": {"type": "string", "minLength": 1}
  }
}`)

// AnalyzeRequestSchema validates the body of POST /api/analyze and the
// variables of an analyze-product job. Signal overrides are optional.
var AnalyzeRequestSchema = MustCompileJSON(`{
  "type": "object",
  "required": ["productId"],
  "properties": {
    "productId":     {"type": "string", "minLength": 1},
    "tariffRate":    {"type": "number", "minimum": 0},
    "demandSignal":  {"type": "number", "minimum": -1, "maximum": 1},
    "weatherFactor": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`)
