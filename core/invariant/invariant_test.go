package invariant_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/mirror/core/invariant"
)

// recovered runs fn and returns the panic message, or "" if fn returned normally
func recovered(fn func()) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%v", r)
		}
	}()
	fn()
	return ""
}

func TestPreconditionPass(t *testing.T) {
	assert.Empty(t, recovered(func() {
		invariant.Precondition(true, "this should pass")
		invariant.Precondition(len("signature") > 0, "keyword not empty")
	}))
}

func TestPreconditionFail(t *testing.T) {
	msg := recovered(func() {
		invariant.Precondition(false, "tokens must not be nil")
	})
	require.NotEmpty(t, msg)
	assert.Contains(t, msg, "PRECONDITION VIOLATION")
	assert.Contains(t, msg, "tokens must not be nil")
	assert.Contains(t, msg, "invariant_test.go:")
}

func TestPostconditionFail(t *testing.T) {
	msg := recovered(func() {
		invariant.Postcondition(false, "program must not be empty")
	})
	assert.Contains(t, msg, "POSTCONDITION VIOLATION")
	assert.Contains(t, msg, "program must not be empty")
}

func TestInvariantFormatsArguments(t *testing.T) {
	msg := recovered(func() {
		invariant.Invariant(false, "stuck at token %d (%q)", 7, "->")
	})
	assert.Contains(t, msg, "INVARIANT VIOLATION")
	assert.Contains(t, msg, `stuck at token 7 ("->")`)
}

func TestNotNil(t *testing.T) {
	name := "f"
	assert.Empty(t, recovered(func() {
		invariant.NotNil(name, "name")
		invariant.NotNil(&name, "ptr")
		invariant.NotNil([]int{1}, "slice")
	}))

	var ptr *string
	msg := recovered(func() { invariant.NotNil(ptr, "statement") })
	assert.Contains(t, msg, "statement must not be nil")

	msg = recovered(func() { invariant.NotNil(nil, "literal") })
	assert.Contains(t, msg, "literal must not be nil")
}

func TestInRange(t *testing.T) {
	assert.Empty(t, recovered(func() {
		invariant.InRange(0, 0, 10, "pos")
		invariant.InRange(10, 0, 10, "pos")
	}))

	tests := []struct {
		name  string
		value int
	}{
		{"below_min", -1},
		{"above_max", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := recovered(func() { invariant.InRange(tt.value, 0, 10, "pos") })
			assert.Contains(t, msg, "must be in range [0, 10]")
			assert.Contains(t, msg, fmt.Sprintf("got %d", tt.value))
		})
	}
}

func TestExpectNoError(t *testing.T) {
	assert.Empty(t, recovered(func() { invariant.ExpectNoError(nil, "schema compile") }))

	msg := recovered(func() {
		invariant.ExpectNoError(fmt.Errorf("bad schema"), "schema compile")
	})
	assert.Contains(t, msg, "schema compile must not fail: bad schema")
}

func TestUnreachable(t *testing.T) {
	msg := recovered(func() { invariant.Unreachable("type variant %T", 42) })
	assert.Contains(t, msg, "UNREACHABLE VIOLATION: type variant int")
}

func ExampleInvariant() {
	tokens := []string{"f", "(", ")"}
	pos, prev := 0, -1
	for pos < len(tokens) {
		invariant.Invariant(pos > prev, "position must advance")
		prev = pos
		fmt.Println("token:", tokens[pos])
		pos++
	}
	// Output:
	// token: f
	// token: (
	// token: )
}
