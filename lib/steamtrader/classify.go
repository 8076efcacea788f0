package steamtrader

import (
	"steamtrader/lib/schema"
)

// Envelope is the {success, code, error} wrapper around every API reply.
type Envelope struct {
	Success bool
	HasCode bool
	Code    int
	Error   string
}

var envelopeSchema = &schema.Schema[Envelope]{
	Name: "Envelope",
	Open: true,
	Fields: []schema.Field[Envelope]{
		schema.Bool("success", func(e *Envelope, v bool) { e.Success = v }).Optional(),
		schema.Int("code", func(e *Envelope, v int) {
			e.HasCode = true
			e.Code = v
		}).Optional(),
		schema.String("error", func(e *Envelope, v string) { e.Error = v }).Optional(),
	},
}

// ParseEnvelope reads the envelope keys out of a decoded reply. A reply
// without a success key counts as successful, the websocket token endpoint
// only sends one on failure.
func ParseEnvelope(d *schema.Decoder, raw any) (Envelope, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Envelope{}, &schema.Error{Path: envelopeSchema.Name, Reason: "reply is not a JSON object"}
	}
	env, err := schema.Decode(d, envelopeSchema, m)
	if err != nil {
		return Envelope{}, err
	}
	if _, present := m["success"]; !present {
		env.Success = true
	}
	return env, nil
}

type Outcome int

const (
	// Proceed means the payload can be decoded.
	Proceed Outcome = iota
	// Benign means success=false was sent as "nothing new", the call returns
	// an empty result without error.
	Benign
	// Failed means the accompanying error describes the failure.
	Failed
)

// AbsentCodePolicy declares what a failed reply without a code means for
// one endpoint.
type AbsentCodePolicy int

const (
	AbsentCodeFatal AbsentCodePolicy = iota
	AbsentCodeBenign
)

type CodeEntry struct {
	Kind    ErrorKind
	Message string
	// ServerMessage uses the reply's error text instead of Message when the
	// server sent one.
	ServerMessage bool
}

// CodeTable maps the endpoint-local codes of one endpoint to error kinds.
type CodeTable struct {
	Endpoint string
	Codes    map[int]CodeEntry
	// Absent classifies failed replies without a code when the endpoint
	// treats those as fatal. Nil leaves them unclassified.
	Absent *CodeEntry
}

func (t CodeTable) Lookup(code int) (CodeEntry, bool) {
	entry, ok := t.Codes[code]
	return entry, ok
}

// Classify decides whether a reply can be decoded. It never retries and
// never inspects the payload.
func Classify(env Envelope, table CodeTable, policy AbsentCodePolicy) (Outcome, error) {
	if env.Success {
		return Proceed, nil
	}

	if !env.HasCode {
		if policy == AbsentCodeBenign {
			return Benign, nil
		}
		if table.Absent != nil {
			return Failed, &DomainError{
				Kind:     table.Absent.Kind,
				Endpoint: table.Endpoint,
				Message:  table.Absent.Message,
			}
		}
		return Failed, &UnclassifiedError{
			Endpoint: table.Endpoint,
			Message:  env.Error,
		}
	}

	entry, ok := table.Lookup(env.Code)
	if !ok {
		return Failed, &UnclassifiedError{
			Endpoint: table.Endpoint,
			HasCode:  true,
			Code:     env.Code,
			Message:  env.Error,
		}
	}

	message := entry.Message
	if entry.ServerMessage && env.Error != "" {
		message = env.Error
	}
	return Failed, &DomainError{
		Kind:     entry.Kind,
		Endpoint: table.Endpoint,
		Code:     env.Code,
		Message:  message,
	}
}
