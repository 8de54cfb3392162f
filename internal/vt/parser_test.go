package vt

import (
	"reflect"
	"testing"
)

// collect runs the input through a fresh parser and returns every non-empty
// action in order.
func collect(input string) []Action {
	p := NewParser()
	var out []Action
	for i := 0; i < len(input); i++ {
		if act := p.Advance(input[i]); act.Kind != ActionNone {
			out = append(out, act)
		}
	}
	return out
}

func TestParserPrintAndExecute(t *testing.T) {
	acts := collect("a\nb")
	want := []Action{
		{Kind: ActionPrint, Rune: 'a'},
		{Kind: ActionExecute, Byte: '\n'},
		{Kind: ActionPrint, Rune: 'b'},
	}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("actions = %+v, want %+v", acts, want)
	}
}

func TestParserCSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Action
	}{
		{"no params", "\x1b[m", Action{Kind: ActionCSI, Params: []int{0}, Final: 'm'}},
		{"single param", "\x1b[5A", Action{Kind: ActionCSI, Params: []int{5}, Final: 'A'}},
		{"two params", "\x1b[3;7H", Action{Kind: ActionCSI, Params: []int{3, 7}, Final: 'H'}},
		{"empty middle param", "\x1b[1;;3m", Action{Kind: ActionCSI, Params: []int{1, 0, 3}, Final: 'm'}},
		{"colon params", "\x1b[38:5:17m", Action{Kind: ActionCSI, Params: []int{38, 5, 17}, Final: 'm'}},
		{"private marker", "\x1b[?25h", Action{Kind: ActionCSI, Params: []int{25}, Private: '?', Final: 'h'}},
		{"intermediate", "\x1b[2 q", Action{Kind: ActionCSI, Params: []int{2}, Intermediate: ' ', Final: 'q'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acts := collect(tt.input)
			if len(acts) != 1 {
				t.Fatalf("got %d actions: %+v", len(acts), acts)
			}
			if !reflect.DeepEqual(acts[0], tt.want) {
				t.Fatalf("action = %+v, want %+v", acts[0], tt.want)
			}
		})
	}
}

func TestParserESC(t *testing.T) {
	acts := collect("\x1b7\x1bM\x1b(B")
	want := []Action{
		{Kind: ActionESC, Final: '7'},
		{Kind: ActionESC, Final: 'M'},
		{Kind: ActionESC, Intermediate: '(', Final: 'B'},
	}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("actions = %+v, want %+v", acts, want)
	}
}

func TestParserOSCTerminators(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
	}{
		{"bel", "\x1b]0;hello\x07"},
		{"st", "\x1b]0;hello\x1b\\"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			acts := collect(tt.input)
			if len(acts) != 1 || acts[0].Kind != ActionOSC {
				t.Fatalf("actions = %+v, want one OSC", acts)
			}
			if string(acts[0].Data) != "0;hello" {
				t.Fatalf("payload = %q", acts[0].Data)
			}
		})
	}
}

func TestParserDCS(t *testing.T) {
	acts := collect("\x1bP1$rdata\x1b\\")
	if len(acts) != 1 || acts[0].Kind != ActionDCS {
		t.Fatalf("actions = %+v, want one DCS", acts)
	}
	if string(acts[0].Data) != "1$rdata" {
		t.Fatalf("payload = %q", acts[0].Data)
	}
}

func TestParserSOSPMAPCConsumed(t *testing.T) {
	acts := collect("\x1b_application payload\x1b\\x")
	want := []Action{{Kind: ActionPrint, Rune: 'x'}}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("actions = %+v, want only trailing print", acts)
	}
}

func TestParserC0InsideCSI(t *testing.T) {
	// a C0 control embedded in a sequence executes without aborting it
	acts := collect("\x1b[3\n1m")
	want := []Action{
		{Kind: ActionExecute, Byte: '\n'},
		{Kind: ActionCSI, Params: []int{31}, Final: 'm'},
	}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("actions = %+v, want %+v", acts, want)
	}
}

func TestParserEscInterruptsCSI(t *testing.T) {
	acts := collect("\x1b[12\x1b[31m")
	want := []Action{{Kind: ActionCSI, Params: []int{31}, Final: 'm'}}
	if !reflect.DeepEqual(acts, want) {
		t.Fatalf("actions = %+v, want %+v", acts, want)
	}
}

func TestParserUTF8AcrossCalls(t *testing.T) {
	p := NewParser()
	bytes := []byte("é") // 0xc3 0xa9
	if act := p.Advance(bytes[0]); act.Kind != ActionNone {
		t.Fatalf("first byte yielded %+v", act)
	}
	act := p.Advance(bytes[1])
	if act.Kind != ActionPrint || act.Rune != 'é' {
		t.Fatalf("second byte yielded %+v", act)
	}
}

func TestParserFourByteRune(t *testing.T) {
	acts := collect("\U0001F600")
	if len(acts) != 1 || acts[0].Kind != ActionPrint || acts[0].Rune != '\U0001F600' {
		t.Fatalf("actions = %+v", acts)
	}
}

func TestParserParamOverflowSaturates(t *testing.T) {
	acts := collect("\x1b[99999999999999999999A")
	if len(acts) != 1 || acts[0].Kind != ActionCSI {
		t.Fatalf("actions = %+v", acts)
	}
	if acts[0].Params[0] <= 0 {
		t.Fatalf("param overflowed to %d", acts[0].Params[0])
	}
}

func TestParserOversizedStringTruncated(t *testing.T) {
	input := make([]byte, 0, maxStringLen+128)
	input = append(input, 0x1b, ']')
	for i := 0; i < maxStringLen+100; i++ {
		input = append(input, 'x')
	}
	input = append(input, 0x07)

	p := NewParser()
	var got Action
	for _, b := range input {
		if act := p.Advance(b); act.Kind != ActionNone {
			got = act
		}
	}
	if got.Kind != ActionOSC {
		t.Fatalf("action = %+v, want OSC", got)
	}
	if len(got.Data) > maxStringLen {
		t.Fatalf("payload length %d exceeds cap", len(got.Data))
	}
}
