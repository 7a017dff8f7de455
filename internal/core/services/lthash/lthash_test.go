package lthash

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iamNilotpal/lthash/internal/adapters/digest"
	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

// tableDigest returns a preset digest per element, so fold arithmetic can be
// checked word by word.
type tableDigest struct {
	size   int
	values map[string][]byte
}

func (d *tableDigest) Digest(data []byte) []byte {
	if v, ok := d.values[string(data)]; ok {
		return v
	}
	return make([]byte, d.size)
}
func (d *tableDigest) Size() int    { return d.size }
func (d *tableDigest) Name() string { return "table" }

func newHash(t *testing.T, opts *domain.LtHashOptions) *LtHash {
	t.Helper()
	h, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return h
}

func b(s string) []byte { return []byte(s) }

func TestNewStartsZeroFilled(t *testing.T) {
	h := newHash(t, nil)

	if diff := cmp.Diff(make([]byte, domain.ChecksumSize), h.GetChecksum()); diff != "" {
		t.Fatalf("fresh checksum mismatch (-want +got):\n%s", diff)
	}
	if h.IsEmpty() {
		t.Fatal("fresh engine reports empty")
	}
	if h.Algorithm() != string(digest.BLAKE3) || h.ByteOrder() != domain.LittleEndian || h.DigestSize() != 32 {
		t.Fatalf("defaults = %s/%s/%d", h.Algorithm(), h.ByteOrder(), h.DigestSize())
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts *domain.LtHashOptions
	}{
		{"unknown algorithm", &domain.LtHashOptions{DigestOptions: &domain.DigestOptions{Algorithm: "md5"}}},
		{"unknown byte order", &domain.LtHashOptions{ByteOrder: "pdp-endian"}},
		{"unaligned digest", &domain.LtHashOptions{DigestOptions: &domain.DigestOptions{Custom: &tableDigest{size: 6}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.IsInvalidArgument(err) {
				t.Fatalf("New() error = %v, want invalid argument", err)
			}
		})
	}
}

func TestCommutativity(t *testing.T) {
	ab := newHash(t, nil)
	ab.Add(b("a"), b("b"))

	ba := newHash(t, nil)
	ba.Add(b("b"), b("a"))

	seq := newHash(t, nil)
	seq.Add(b("a"))
	seq.Add(b("b"))

	if !ab.ChecksumEquals(ba.GetChecksum()) {
		t.Fatal("Add(a,b) != Add(b,a)")
	}
	if !ab.ChecksumEquals(seq.GetChecksum()) {
		t.Fatal("Add(a,b) != Add(a); Add(b)")
	}
	if ab.ChecksumEquals(make([]byte, domain.ChecksumSize)) {
		t.Fatal("Add(a,b) left the checksum at zero")
	}
}

func TestInvertibility(t *testing.T) {
	for _, algorithm := range []domain.DigestAlgorithm{digest.BLAKE3, digest.BLAKE3XOF, digest.SHA256} {
		for _, order := range []domain.ByteOrder{domain.LittleEndian, domain.BigEndian} {
			h := newHash(t, &domain.LtHashOptions{
				ByteOrder:     order,
				DigestOptions: &domain.DigestOptions{Algorithm: algorithm},
			})
			h.Add(b("seed-1"), b("seed-2"))
			start := h.GetChecksum()

			h.Add(b("x"))
			h.Remove(b("x"))

			if diff := cmp.Diff(start, h.GetChecksum()); diff != "" {
				t.Fatalf("%s/%s: add then remove changed state (-want +got):\n%s", algorithm, order, diff)
			}
		}
	}
}

func TestRemoveFromZeroIsInverse(t *testing.T) {
	h := newHash(t, nil)
	h.Remove(b("never-added"))
	h.Add(b("never-added"))

	if !h.ChecksumEquals(make([]byte, domain.ChecksumSize)) {
		t.Fatal("remove then add of the same element did not return to zero")
	}
}

func TestUpdateEquivalence(t *testing.T) {
	updated := newHash(t, nil)
	updated.Add(b("k1"), b("old"))
	updated.Update(b("old"), b("new"))

	manual := newHash(t, nil)
	manual.Add(b("k1"), b("old"))
	manual.Remove(b("old"))
	manual.Add(b("new"))

	if diff := cmp.Diff(manual.GetChecksum(), updated.GetChecksum()); diff != "" {
		t.Fatalf("Update differs from Remove+Add (-want +got):\n%s", diff)
	}

	direct := newHash(t, nil)
	direct.Add(b("new"), b("k1"))
	if !direct.ChecksumEquals(updated.GetChecksum()) {
		t.Fatal("Update does not match adding the new value directly")
	}
}

func TestEmptyInputsAreNoOps(t *testing.T) {
	h := newHash(t, nil)
	h.Add(b("a"))
	before := h.GetChecksum()

	h.Add()
	h.Remove()
	h.Add(nil...)

	if diff := cmp.Diff(before, h.GetChecksum()); diff != "" {
		t.Fatalf("empty input changed state (-want +got):\n%s", diff)
	}

	// An empty element is still an element.
	h.Add([]byte{})
	if h.ChecksumEquals(before) {
		t.Fatal("adding an empty element left the checksum unchanged")
	}
}

func TestChecksumEquals(t *testing.T) {
	h := newHash(t, nil)
	h.Add(b("apple"))

	a := h.GetChecksum()
	if !h.ChecksumEquals(a) {
		t.Fatal("checksum does not equal itself")
	}

	other := newHash(t, nil)
	other.Add(b("apple"))
	c := other.GetChecksum()
	if h.ChecksumEquals(c) != other.ChecksumEquals(a) {
		t.Fatal("ChecksumEquals is not symmetric")
	}

	flipped := bytes.Clone(a)
	flipped[domain.ChecksumSize-1] ^= 0x01
	if h.ChecksumEquals(flipped) {
		t.Fatal("last byte difference not detected")
	}

	if h.ChecksumEquals(a[:domain.ChecksumSize-4]) {
		t.Fatal("shorter prefix reported equal")
	}
	if h.ChecksumEquals(append(bytes.Clone(a), 0)) {
		t.Fatal("longer buffer reported equal")
	}
	if h.ChecksumEquals(nil) {
		t.Fatal("nil reported equal to a full checksum")
	}
}

func TestGetChecksumReturnsCopy(t *testing.T) {
	h := newHash(t, nil)
	h.Add(b("a"))

	out := h.GetChecksum()
	want := bytes.Clone(out)
	out[0] ^= 0xFF

	if !h.ChecksumEquals(want) {
		t.Fatal("mutating GetChecksum result changed engine state")
	}
}

func TestSetChecksumRoundTrip(t *testing.T) {
	in := make([]byte, domain.ChecksumSize)
	for i := range in {
		in[i] = byte(i * 7)
	}

	h := newHash(t, nil)
	if err := h.SetChecksum(in); err != nil {
		t.Fatalf("SetChecksum() error = %v", err)
	}
	if diff := cmp.Diff(in, h.GetChecksum()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	in[0] ^= 0xFF
	if h.ChecksumEquals(in) {
		t.Fatal("SetChecksum aliased the caller's buffer")
	}
}

func TestSetChecksumRejectsWrongLength(t *testing.T) {
	h := newHash(t, nil)
	h.Add(b("keep"))
	before := h.GetChecksum()

	for _, size := range []int{0, 32, domain.ChecksumSize - 1, domain.ChecksumSize + 1} {
		err := h.SetChecksum(make([]byte, size))
		if !errors.IsInvalidArgument(err) {
			t.Fatalf("SetChecksum(len %d) error = %v, want invalid argument", size, err)
		}
		if ve := errors.AsValidationError(err); ve == nil || ve.Value != size {
			t.Fatalf("SetChecksum(len %d) validation error = %v", size, ve)
		}
	}

	if diff := cmp.Diff(before, h.GetChecksum()); diff != "" {
		t.Fatalf("failed SetChecksum changed state (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	h := newHash(t, nil)
	zero := h.GetChecksum()
	h.Add(b("a"), b("b"))
	full := h.GetChecksum()

	h.Reset()

	if !h.IsEmpty() {
		t.Fatal("IsEmpty() = false after Reset")
	}
	if got := h.GetChecksum(); len(got) != 0 {
		t.Fatalf("len(GetChecksum()) = %d after Reset, want 0", len(got))
	}
	if h.ChecksumEquals(full) || h.ChecksumEquals(zero) {
		t.Fatal("empty engine equals a checksum captured before Reset")
	}
	if !h.ChecksumEquals(nil) || !h.ChecksumEquals([]byte{}) {
		t.Fatal("empty engine does not equal an empty checksum")
	}

	// Folding after Reset starts over from the zero accumulator.
	h.Add(b("b"), b("a"))
	if !h.ChecksumEquals(full) {
		t.Fatal("Add after Reset does not restart from zero")
	}

	h.Reset()
	if err := h.SetChecksum(full); err != nil {
		t.Fatalf("SetChecksum after Reset error = %v", err)
	}
	if !h.ChecksumEquals(full) {
		t.Fatal("SetChecksum after Reset did not restore the checksum")
	}
}

func TestFoldTouchesOnlyDigestWidth(t *testing.T) {
	h := newHash(t, nil)
	h.Add(b("apple"), b("orange"), b("pear"))

	got := h.GetChecksum()
	if bytes.Equal(got[:h.DigestSize()], make([]byte, h.DigestSize())) {
		t.Fatal("digest prefix was not modified")
	}
	if !bytes.Equal(got[h.DigestSize():], make([]byte, domain.ChecksumSize-h.DigestSize())) {
		t.Fatal("fold touched bytes beyond the digest width")
	}
}

func TestOversizedDigestOutputIsClipped(t *testing.T) {
	long := bytes.Repeat([]byte{1}, domain.ChecksumSize+4)
	h := newHash(t, &domain.LtHashOptions{
		DigestOptions: &domain.DigestOptions{Custom: &tableDigest{size: 32, values: map[string][]byte{"long": long}}},
	})

	h.Add(b("long"))

	want := make([]byte, domain.ChecksumSize)
	copy(want, long[:32])
	if diff := cmp.Diff(want, h.GetChecksum()); diff != "" {
		t.Fatalf("checksum mismatch (-want +got):\n%s", diff)
	}
}

func TestWideDigestTouchesWholeAccumulator(t *testing.T) {
	h := newHash(t, &domain.LtHashOptions{DigestOptions: &domain.DigestOptions{Algorithm: digest.BLAKE3XOF}})
	h.Add(b("apple"))

	tail := h.GetChecksum()[domain.ChecksumSize-64:]
	if bytes.Equal(tail, make([]byte, 64)) {
		t.Fatal("wide digest left the accumulator tail untouched")
	}
}

func TestWordArithmeticWraps(t *testing.T) {
	top := make([]byte, 8)
	binary.LittleEndian.PutUint32(top[0:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(top[4:], 1)

	h := newHash(t, &domain.LtHashOptions{
		DigestOptions: &domain.DigestOptions{Custom: &tableDigest{size: 8, values: map[string][]byte{"max": top}}},
	})

	h.Add(b("max"), b("max"))
	got := h.GetChecksum()
	if w := binary.LittleEndian.Uint32(got[0:]); w != 0xFFFFFFFE {
		t.Fatalf("word 0 = %#x, want 0xfffffffe", w)
	}
	if w := binary.LittleEndian.Uint32(got[4:]); w != 2 {
		t.Fatalf("word 1 = %d, want 2", w)
	}

	h.Remove(b("max"), b("max"), b("max"))
	got = h.GetChecksum()
	if w := binary.LittleEndian.Uint32(got[0:]); w != 1 {
		t.Fatalf("word 0 after underflow = %#x, want 1", w)
	}
	if w := binary.LittleEndian.Uint32(got[4:]); w != 0xFFFFFFFF {
		t.Fatalf("word 1 after underflow = %#x, want 0xffffffff", w)
	}
}

func TestByteOrderChangesLayout(t *testing.T) {
	little := newHash(t, nil)
	big := newHash(t, &domain.LtHashOptions{ByteOrder: domain.BigEndian})

	little.Add(b("a"), b("b"))
	big.Add(b("a"), b("b"))

	if little.ChecksumEquals(big.GetChecksum()) {
		t.Fatal("little- and big-endian accumulators match for a carrying sum")
	}
}

func TestDeepCopyRejectsMismatch(t *testing.T) {
	err := deepCopy(make([]byte, 4), make([]byte, 8))
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("deepCopy() error = %v, want invalid argument", err)
	}
}

func TestAppleOrangeScenario(t *testing.T) {
	h := newHash(t, nil)

	h.Add(b("apple"), b("orange"))
	checksum := h.GetChecksum()

	h.Remove(b("apple"))
	if h.ChecksumEquals(checksum) {
		t.Fatal("equal after removing apple")
	}

	h.Update(b("orange"), b("apple"))
	if h.ChecksumEquals(checksum) {
		t.Fatal("equal after replacing orange with apple")
	}

	h.Add(b("orange"))
	if !h.ChecksumEquals(checksum) {
		t.Fatal("not equal after adding orange back")
	}
}
