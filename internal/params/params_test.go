package params

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		key  string
		want string
		ok   bool
	}{
		{"bare string", map[string]any{"text": "hi"}, "text", "hi", true},
		{"wrapped same key", map[string]any{"text": map[string]any{"text": "hi"}}, "text", "hi", true},
		{"wrapped encoded_text", map[string]any{"encoded_text": map[string]any{"text": "aGk="}}, "encoded_text", "aGk=", true},
		{"missing", map[string]any{}, "text", "", false},
		{"wrong type", map[string]any{"text": 42.0}, "text", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Text(tt.args, tt.key)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Text = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPair(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		a, b    float64
		wantErr bool
	}{
		{"flat", map[string]any{"a": 2.0, "b": 3.0}, 2, 3, false},
		{"nested params", map[string]any{"params": map[string]any{"a": 2.0, "b": 3.0}}, 2, 3, false},
		{"array params", map[string]any{"params": []any{4.0, 5.0}}, 4, 5, false},
		{"numeric strings", map[string]any{"a": "1.5", "b": "2"}, 1.5, 2, false},
		{"missing b", map[string]any{"a": 1.0}, 0, 0, true},
		{"non-numeric", map[string]any{"a": "x", "b": 1.0}, 0, 0, true},
		{"short array", map[string]any{"params": []any{1.0}}, 0, 0, true},
		{"NaN string", map[string]any{"a": "NaN", "b": 3.0}, 0, 0, true},
		{"Infinity string", map[string]any{"a": 1.0, "b": "Infinity"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, err := Pair(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && (a != tt.a || b != tt.b) {
				t.Fatalf("pair = (%v, %v), want (%v, %v)", a, b, tt.a, tt.b)
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	if _, err := ToNumber(true); err == nil {
		t.Fatal("expected error for bool")
	}
	if n, err := ToNumber("3.5"); err != nil || n != 3.5 {
		t.Fatalf("ToNumber(\"3.5\") = %v, %v", n, err)
	}
	for _, s := range []string{"NaN", "Infinity", "-Inf", "+inf"} {
		if _, err := ToNumber(s); err == nil {
			t.Errorf("ToNumber(%q) should reject non-finite values", s)
		}
	}
}
