package parse

import (
	"regexp"
	"strings"

	"github.com/loupeview/loupe/internal/logline"
)

// Shared fragments for the grammar table.
const (
	dateFrag   = `\d{4}[-/]\d{2}[-/]\d{2}`
	timeFrag   = `\d{2}:\d{2}:\d{2}(?:[.,]\d{1,9})?`
	clockFrag  = dateFrag + `[T ]` + timeFrag + `(?:Z|[+-]\d{2}:?\d{2})?`
	levelFrag  = `(?i:TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL)`
	upperFrag  = `TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL`
	dashFrag   = `[-–—]`
	loggerFrag = `[\w$][\w.$/-]*`
)

// grammar is one recognized line shape. Grammars run in order against the
// first physical line of an entry and the first match wins, so specific
// shapes must stay above the generic ones.
type grammar struct {
	name string
	re   *regexp.Regexp
	get  func(m []string, full string) logline.Fields
}

const grammarRaw = "raw"

var grammars = []grammar{
	// machine ISO + human-readable timestamp, logger carrying file:line, optional trailing tag
	{"dual-ts",
		regexp.MustCompile(`^(` + clockFrag + `)\s+(` + dateFrag + ` ` + timeFrag + `)\s+\[([^\]]+)\]\s+(` + levelFrag + `)\s+([\w$][\w.$]*\([^()]*:\d+\))\s*` + dashFrag + `\s*(.*?)(?:\s+\[([^\]]+)\])?$`),
		func(m []string, _ string) logline.Fields {
			ctx := m[7]
			if ctx == "" {
				ctx = m[3]
			}
			return logline.Fields{Timestamp: m[1], Level: m[4], Logger: m[5], Context: ctx, Message: m[6]}
		}},
	// timestamp + numeric sequence counter + thread + level + logger
	{"seq-id",
		regexp.MustCompile(`^(` + clockFrag + `)\s+\d+\s+\[([^\]]+)\]\s+(` + levelFrag + `)\s+(` + loggerFrag + `)\s*` + dashFrag + `\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1], Level: m[3], Logger: m[4], Context: m[2], Message: m[5]}
		}},
	// thread + level + logger + [file:line] + optional [tag], no timestamp
	{"thread-source",
		regexp.MustCompile(`^\[([^\]]+)\]\s+(` + levelFrag + `)\s+(` + loggerFrag + `)\s+\[([^\]]*:\d+)\](?:\s+\[([^\]]+)\])?\s*` + dashFrag + `\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			ctx := m[5]
			if ctx == "" {
				ctx = m[1]
			}
			return logline.Fields{Level: m[2], Logger: m[3], Context: ctx, Message: m[6]}
		}},
	// same shape with a leading timestamp
	{"ts-thread-source",
		regexp.MustCompile(`^(` + clockFrag + `)\s+\[([^\]]+)\]\s+(` + levelFrag + `)\s+(` + loggerFrag + `)\s+\[([^\]]*:\d+)\](?:\s+\[([^\]]+)\])?\s*` + dashFrag + `\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			ctx := m[6]
			if ctx == "" {
				ctx = m[2]
			}
			return logline.Fields{Timestamp: m[1], Level: m[3], Logger: m[4], Context: ctx, Message: m[7]}
		}},
	// time-only variant of the bracketed-context shapes
	{"time-thread",
		regexp.MustCompile(`^(` + timeFrag + `)\s+\[([^\]]+)\]\s+(` + levelFrag + `)\s+(` + loggerFrag + `)(?:\s+\[([^\]]*:\d+)\])?(?:\s+\[([^\]]+)\])?\s*` + dashFrag + `\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			ctx := m[6]
			if ctx == "" {
				ctx = m[2]
			}
			return logline.Fields{Timestamp: m[1], Level: m[3], Logger: m[4], Context: ctx, Message: m[7]}
		}},
	// logging framework status lines: "12:17:15,184 |-INFO in component - message"
	{"framework-status",
		regexp.MustCompile(`^(` + timeFrag + `)\s+\|-\s*(` + levelFrag + `)\s+in\s+(\S+?)\s*` + dashFrag + `\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1], Level: m[2], Logger: m[3], Message: m[4]}
		}},
	// build-tool section banners: "[INFO] --- plugin:goal @ module ---"
	{"build-banner",
		regexp.MustCompile(`^\[(INFO|ERROR|WARNING)\] ((?:-{3}|={3}).*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Level: m[1], Message: m[2]}
		}},
	// build-tool compiler diagnostics: "[ERROR] /src/Main.java:[5,8] cannot find symbol"
	{"build-file",
		regexp.MustCompile(`^\[(INFO|ERROR|WARNING)\]\s+(\S+\.(?:java|kt|kts|scala|groovy)):\[?(\d+)(?:[,:]\d+)?\]?\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Level: m[1], Logger: m[2], Message: m[4]}
		}},
	// remaining build-tool output: "[INFO] Building demo 1.0"
	{"build-generic",
		regexp.MustCompile(`^\[(INFO|ERROR|WARNING)\]\s?(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Level: m[1], Message: m[2]}
		}},
	// timestamp + level + bracketed logger, no dash
	{"ts-level-logger",
		regexp.MustCompile(`^(` + clockFrag + `)\s+(` + levelFrag + `)\s+\[([^\]]+)\]:?\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1], Level: m[2], Logger: m[3], Message: m[4]}
		}},
	// timestamp + bracketed level
	{"ts-bracket-level",
		regexp.MustCompile(`^(` + clockFrag + `)\s+\[(` + levelFrag + `)\]:?\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1], Level: m[2], Message: m[3]}
		}},
	// dash-delimited scripting convention: "ts - module - LEVEL - message"
	{"script-dashes",
		regexp.MustCompile(`^(` + clockFrag + `)\s+` + dashFrag + `\s+(\S+)\s+` + dashFrag + `\s+(` + levelFrag + `)\s+` + dashFrag + `\s+(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1], Level: m[3], Logger: m[2], Message: m[4]}
		}},
	// timestamp + thread + level + logger + dash
	{"ts-thread",
		regexp.MustCompile(`^(` + clockFrag + `)\s+\[([^\]]+)\]\s+(` + levelFrag + `)\s+(` + loggerFrag + `)\s*` + dashFrag + `\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1], Level: m[3], Logger: m[4], Context: m[2], Message: m[5]}
		}},
	// generic bracketed level
	{"bracket-level",
		regexp.MustCompile(`^\[(` + levelFrag + `)\]:?\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Level: m[1], Message: m[2]}
		}},
	// bracketed tag followed by a level
	{"tag-level",
		regexp.MustCompile(`^\[([^\]]+)\]\s+(` + levelFrag + `)\b:?\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Level: m[2], Context: m[1], Message: m[3]}
		}},
	// bare level word, uppercase only so prose does not match
	{"bare-level",
		regexp.MustCompile(`^(` + upperFrag + `)\b:?\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Level: m[1], Message: m[2]}
		}},
	// bracket-chain structured form: "[date][time][target][LEVEL] message"
	{"bracket-chain",
		regexp.MustCompile(`^\[(` + dateFrag + `)\]\[(` + timeFrag + `)\]\[([^\]]+)\]\[(` + levelFrag + `)\]\s*(.*)$`),
		func(m []string, _ string) logline.Fields {
			return logline.Fields{Timestamp: m[1] + " " + m[2], Level: m[4], Logger: m[3], Message: m[5]}
		}},
	// bare timestamp + free text, the fallback for stack traces and minimal logs
	{"ts-freetext",
		regexp.MustCompile(`^(` + clockFrag + `)\s+(\S.*)$`),
		func(m []string, full string) logline.Fields {
			f := logline.Fields{Timestamp: m[1], Message: m[2]}
			if looksLikeStack(full) {
				f.Level = logline.LevelError
			}
			return f
		}},
}

// Match runs the grammar cascade over one folded entry text. Grammars see
// only the first physical line; folded continuations are carried into the
// message verbatim. The returned name identifies the winning grammar,
// grammarRaw for the catch-all.
func Match(text string) (logline.Fields, string) {
	head, rest, _ := strings.Cut(text, "\n")
	for _, g := range grammars {
		m := g.re.FindStringSubmatch(head)
		if m == nil {
			continue
		}
		f := g.get(m, text)
		f.Level = normalizeLevel(f.Level)
		if rest != "" {
			f.Message += "\n" + rest
		}
		return f, g.name
	}
	f := logline.Fields{Message: strings.TrimSpace(text)}
	if looksLikeStack(text) {
		f.Level = logline.LevelError
	}
	return f, grammarRaw
}

// normalizeLevel uppercases a level token and folds WARNING to WARN.
func normalizeLevel(level string) string {
	u := strings.ToUpper(level)
	if u == "WARNING" {
		return logline.LevelWarn
	}
	return u
}

// looksLikeStack reports whether any line of the text is a stack-trace idiom.
func looksLikeStack(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if isStackIdiom(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}
