package parse

import (
	"regexp"
	"strconv"

	"github.com/loupeview/loupe/internal/logline"
)

// callIdiom recognizes one request/response logging convention inside a
// message. Like the grammar cascade, idioms run in order and the first
// match wins, so the forms carrying more detail sit on top.
type callIdiom struct {
	re  *regexp.Regexp
	get func(m []string) logline.APICall
}

var callIdioms = []callIdiom{
	// outgoing POST-family request with headers and body
	{regexp.MustCompile(`^(POST|PUT|PATCH)\s+(\S+)\s+headers:\s*(\{.*?\})\s+body:\s*(?s:(.+))$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseRequest,
				Method: m[1], Endpoint: m[2], Headers: m[3], RequestBody: m[4]}
		}},
	// outgoing multipart request
	{regexp.MustCompile(`^(POST|PUT)\s+(\S+)\s+multipart:\s*(?s:(.+))$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseRequest,
				Method: m[1], Endpoint: m[2], RequestBody: m[3]}
		}},
	// outgoing GET-family request with body
	{regexp.MustCompile(`^(GET|DELETE)\s+(\S+)\s+body:\s*(?s:(.+))$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseRequest,
				Method: m[1], Endpoint: m[2], RequestBody: m[3]}
		}},
	// inline response echoing the request, with status
	{regexp.MustCompile(`^(GET|POST|PUT|PATCH|DELETE)\s+(\S+)\s+(\d{3})\s+response:\s*(?s:(.+))$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseResponse,
				Method: m[1], Endpoint: m[2], Status: atoi(m[3]), ResponseBody: m[4]}
		}},
	// inline response echoing the request
	{regexp.MustCompile(`^(GET|POST|PUT|PATCH|DELETE)\s+(\S+)\s+response:\s*(?s:(.+))$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseResponse,
				Method: m[1], Endpoint: m[2], ResponseBody: m[3]}
		}},
	// outgoing GET-family request without body
	{regexp.MustCompile(`^(GET|DELETE)\s+(\S+)$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseRequest,
				Method: m[1], Endpoint: m[2]}
		}},
	// outgoing response with status, verb, url, optional timing and body
	{regexp.MustCompile(`^<--\s+(\d{3})\s+(GET|POST|PUT|PATCH|DELETE)\s+(\S+)(?:\s+\((\d+)\s?ms\))?(?:\s+(?s:(.+)))?$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallOutgoing, Phase: logline.PhaseResponse,
				Status: atoi(m[1]), Method: m[2], Endpoint: m[3], DurationMS: int64(atoi(m[4])), ResponseBody: m[5]}
		}},
	// incoming request: leading path token with inbound arrow
	{regexp.MustCompile(`^(/\S*)\s+<-\s+(GET|POST|PUT|PATCH|DELETE)(?:\s+(?s:(.+)))?$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallIncoming, Phase: logline.PhaseRequest,
				Endpoint: m[1], Method: m[2], RequestBody: m[3]}
		}},
	// incoming response: leading path token with outbound arrow
	{regexp.MustCompile(`^(/\S*)\s+->\s+(\d{3})(?:\s+(?s:(.+)))?$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallIncoming, Phase: logline.PhaseResponse,
				Endpoint: m[1], Status: atoi(m[2]), ResponseBody: m[3]}
		}},
	// incoming round trip summary
	{regexp.MustCompile(`^(/\S*)\s+<->\s+(\d{3})(?:\s+\((\d+)\s?ms\))?$`),
		func(m []string) logline.APICall {
			return logline.APICall{Direction: logline.CallIncoming, Phase: logline.PhaseComplete,
				Endpoint: m[1], Status: atoi(m[2]), DurationMS: int64(atoi(m[3]))}
		}},
}

// MatchCall extracts an API-call record from message content, or nil when
// no idiom applies.
func MatchCall(message string) *logline.APICall {
	for _, idiom := range callIdioms {
		if m := idiom.re.FindStringSubmatch(message); m != nil {
			call := idiom.get(m)
			return &call
		}
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
