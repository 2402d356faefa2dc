package validation

const checkoutSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Checkout request",
  "type": "object",
  "required": ["userId"],
  "properties": {
    "userId": {"type": "string", "minLength": 1},
    "amount": {"type": "number", "minimum": 0},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "quantity": {"type": "integer", "minimum": 1},
          "price": {"type": "number", "minimum": 0}
        }
      }
    },
    "type": {"type": "string", "enum": ["activity_upgrade", "package"]},
    "packageId": {"type": "string"}
  },
  "anyOf": [
    {"required": ["amount"], "properties": {"amount": {"exclusiveMinimum": 0}}},
    {"required": ["items"], "properties": {"items": {"minItems": 1}}}
  ]
}`

const verifySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Verify payment request",
  "type": "object",
  "required": ["sessionId"],
  "properties": {
    "sessionId": {"type": "string", "minLength": 1}
  }
}`

const cancellationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Cancellation request",
  "type": "object",
  "required": ["userId"],
  "properties": {
    "userId": {"type": "string", "minLength": 1}
  }
}`
