package chunk

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromBytes(t *testing.T) {
	ct, err := FromBytes([4]byte{82, 117, 83, 116})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if ct.Bytes() != [4]byte{82, 117, 83, 116} {
		t.Errorf("unexpected bytes %v", ct.Bytes())
	}
	fromStr, err := FromString("RuSt")
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if fromStr != ct {
		t.Errorf("FromString and FromBytes disagree: %v vs %v", fromStr, ct)
	}
	if ct.String() != "RuSt" {
		t.Errorf("expected RuSt, got %s", ct)
	}
}

func TestFromStringErrors(t *testing.T) {
	cases := []struct {
		code string
		err  error
	}{
		{code: "Ru1t", err: ErrInvalidBytes},
		{code: "Ru", err: ErrInvalidChunkLength},
		{code: "RuStt", err: ErrInvalidChunkLength},
		{code: "", err: ErrInvalidChunkLength},
		{code: "Ru t", err: ErrInvalidBytes},
		{code: "Ru[t", err: ErrInvalidBytes},
		{code: "R\xffSt", err: ErrInvalidBytes},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("run_%d", i), func(t *testing.T) {
			_, err := FromString(tc.code)
			if !errors.Is(err, tc.err) {
				t.Errorf("FromString(%q): expected %v, got %v", tc.code, tc.err, err)
			}
		})
	}
	if _, err := FromBytes([4]byte{'R', 'u', '@', 't'}); !errors.Is(err, ErrInvalidBytes) {
		t.Errorf("expected ErrInvalidBytes, got %v", err)
	}
}

func TestPropertyBits(t *testing.T) {
	cases := []struct {
		code     string
		critical bool
		public   bool
		reserved bool
		safe     bool
		valid    bool
	}{
		{code: "RuSt", critical: true, public: false, reserved: true, safe: true, valid: true},
		{code: "ruSt", critical: false, public: false, reserved: true, safe: true, valid: true},
		{code: "RUSt", critical: true, public: true, reserved: true, safe: true, valid: true},
		{code: "RuST", critical: true, public: false, reserved: true, safe: false, valid: true},
		{code: "Rust", critical: true, public: false, reserved: false, safe: true, valid: false},
		{code: "IHDR", critical: true, public: true, reserved: true, safe: false, valid: true},
		{code: "tEXt", critical: false, public: true, reserved: true, safe: true, valid: true},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("run_%d", i), func(t *testing.T) {
			ct, err := FromString(tc.code)
			if err != nil {
				t.Fatalf("Expected no error, but got %v", err)
			}
			if ct.IsCritical() != tc.critical {
				t.Errorf("%s: IsCritical() = %v", tc.code, ct.IsCritical())
			}
			if ct.IsPublic() != tc.public {
				t.Errorf("%s: IsPublic() = %v", tc.code, ct.IsPublic())
			}
			if ct.IsReservedBitValid() != tc.reserved {
				t.Errorf("%s: IsReservedBitValid() = %v", tc.code, ct.IsReservedBitValid())
			}
			if ct.IsSafeToCopy() != tc.safe {
				t.Errorf("%s: IsSafeToCopy() = %v", tc.code, ct.IsSafeToCopy())
			}
			if ct.IsValid() != tc.valid {
				t.Errorf("%s: IsValid() = %v", tc.code, ct.IsValid())
			}
		})
	}
}

func TestIsStandard(t *testing.T) {
	if !IsStandard(ChunkIEND) || !IsStandard(ChunktEXt) {
		t.Errorf("registered chunk types not reported as standard")
	}
	if IsStandard(mustType("RuSt")) {
		t.Errorf("RuSt reported as standard")
	}
}
