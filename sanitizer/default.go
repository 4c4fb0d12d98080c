package sanitizer

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// builtInSanitizers is copied into every new Sanitizer (see New in
// sanitizer.go) so registering a custom tag on one instance never affects
// another. The tag set is assembled from every category file in this
// package (string.go, case.go, special.go) plus stripControlSanitizer
// below.
var (
	builtInSanitizers = make(map[string]SanitizeFunc)

	// sanitizersMutex guards builtInSanitizers against concurrent
	// RegisterDefaultSanitizer calls; New takes its own lock via
	// sanitizersMutex.RLock when copying it.
	sanitizersMutex sync.RWMutex
)

func init() {
	ResetSanitizers()
}

// ResetSanitizers restores builtInSanitizers to the default set. Primarily
// useful in tests that register a custom tag and need to undo it afterward.
func ResetSanitizers() {
	sanitizersMutex.Lock()
	defer sanitizersMutex.Unlock()
	builtInSanitizers = map[string]SanitizeFunc{
		"trim":       trimSanitizer,
		"lower":      lowerSanitizer,
		"upper":      upperSanitizer,
		"replace":    replaceSanitizer,
		"striphtml":  stripHTMLSanitizer,
		"escape":     escapeSanitizer,
		"alphanum":   alphanumSanitizer,
		"numeric":    numericSanitizer,
		"truncate":   truncateSanitizer,
		"normalize":  normalizeSanitizer,
		"capitalize": capitalizeSanitizer,
		"camelcase":  camelCaseSanitizer,
		"snakecase":  snakeCaseSanitizer,
		"kebabcase":  kebabCaseSanitizer,
		"pascalcase": pascalCaseSanitizer,
		"ucfirst":    ucfirstSanitizer,
		"lcfirst":    lcfirstSanitizer,
		"trimspace":  trimspaceSanitizer,
		"email":      emailSanitizer,
		"control":    stripControlSanitizer,
		"slug":       slugSanitizer,
		"uuid":       uuidSanitizer,
		"bool":       boolSanitizer,
	}
}

// RegisterDefaultSanitizer adds tag to every Sanitizer created afterward by
// New, on top of the built-in set above. Existing Sanitizer instances are
// unaffected; use Sanitizer.RegisterSanitizer on the instance itself for
// that.
func RegisterDefaultSanitizer(tag string, fn SanitizeFunc) {
	sanitizersMutex.Lock()
	defer sanitizersMutex.Unlock()
	builtInSanitizers[tag] = fn
}

// stripControlSanitizer removes C0 and C1 control characters and DEL (other
// than tab and newline) from chat and translation text before it is persisted or relayed
// over SSE, where a stray control byte can desynchronize a client's
// terminal or parser.
func stripControlSanitizer(fieldValue any, fieldType reflect.StructField, params []string) any {
	v, ok := fieldValue.(string)
	if !ok {
		return fieldValue
	}
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		if r == '\t' || r == '\n' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
