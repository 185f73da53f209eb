package signature

import (
	"math"
	"strconv"
	"testing"
	"time"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	now := int64(1_700_000_000)
	v := NewVerifier(testSecret, WithClock(fixedClock(now)))

	bodies := []string{
		"",
		`{"type":"url_verification","challenge":"abc123"}`,
		"token=xyzz0WbapA4vBCDEFasx0q6G&team_id=T1DC2JH3J&command=%2Fweather",
	}
	for _, body := range bodies {
		ts := strconv.FormatInt(now-42, 10)
		sig := v.Sign(ts, []byte(body))

		got := v.Verify([]byte(body), ts, sig)
		if !got.Verified() {
			t.Fatalf("expected verified for body %q, got %+v", body, got)
		}
	}
}

func TestVerifier_ReplayWindowBoundary(t *testing.T) {
	t.Parallel()

	now := int64(1_700_000_000)
	v := NewVerifier(testSecret, WithClock(fixedClock(now)))
	body := []byte(`{"type":"event_callback"}`)

	cases := []struct {
		offset    int64
		timeClose bool
	}{
		{offset: 0, timeClose: true},
		{offset: 299, timeClose: true},
		{offset: 300, timeClose: false},
		{offset: 301, timeClose: false},
		{offset: -299, timeClose: true},
		{offset: -300, timeClose: false},
		{offset: -301, timeClose: false},
	}
	for _, tc := range cases {
		ts := strconv.FormatInt(now-tc.offset, 10)
		got := v.Verify(body, ts, v.Sign(ts, body))

		if !got.SignatureValid {
			t.Fatalf("offset=%d: signature should be valid", tc.offset)
		}
		if got.TimeClose != tc.timeClose {
			t.Fatalf("offset=%d: TimeClose=%t want=%t", tc.offset, got.TimeClose, tc.timeClose)
		}
		if got.Verified() != tc.timeClose {
			t.Fatalf("offset=%d: Verified=%t want=%t", tc.offset, got.Verified(), tc.timeClose)
		}
	}

	extremes := []int64{math.MinInt64 + now, math.MinInt64, math.MaxInt64, math.MaxInt64 - now, -now}
	for _, sent := range extremes {
		ts := strconv.FormatInt(sent, 10)
		got := v.Verify(body, ts, v.Sign(ts, body))
		if got.TimeClose || got.Verified() {
			t.Fatalf("ts=%s: extreme timestamp must not be time-close", ts)
		}
	}
}

func TestVerifier_SingleCharacterMutation(t *testing.T) {
	t.Parallel()

	now := int64(1_700_000_000)
	v := NewVerifier(testSecret, WithClock(fixedClock(now)))
	body := []byte(`{"type":"url_verification","challenge":"abc123"}`)
	ts := strconv.FormatInt(now, 10)
	sig := v.Sign(ts, body)

	prefix := len(Version) + 1
	for i := prefix; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}

		got := v.Verify(body, ts, string(mutated))
		if got.SignatureValid || got.Verified() {
			t.Fatalf("mutation at index %d should fail verification", i)
		}
		if !got.TimeClose {
			t.Fatalf("mutation must not affect the timestamp check")
		}
	}
}

func TestVerifier_WrongSecretOrBody(t *testing.T) {
	t.Parallel()

	now := int64(1_700_000_000)
	signer := NewVerifier("other-secret", WithClock(fixedClock(now)))
	v := NewVerifier(testSecret, WithClock(fixedClock(now)))
	ts := strconv.FormatInt(now, 10)
	body := []byte(`{"a":1}`)

	if v.Verify(body, ts, signer.Sign(ts, body)).SignatureValid {
		t.Fatalf("signature from another secret must not verify")
	}
	if v.Verify([]byte(`{"a":2}`), ts, v.Sign(ts, body)).SignatureValid {
		t.Fatalf("signature over another body must not verify")
	}
	if v.Verify(body, strconv.FormatInt(now-1, 10), v.Sign(ts, body)).SignatureValid {
		t.Fatalf("signature over another timestamp must not verify")
	}
}

func TestVerifier_MalformedHeaders(t *testing.T) {
	t.Parallel()

	now := int64(1_700_000_000)
	v := NewVerifier(testSecret, WithClock(fixedClock(now)))
	body := []byte(`{}`)
	ts := strconv.FormatInt(now, 10)

	for _, header := range []string{"", "v0=", "v0=zz", "v0=abc", "garbage", "v1=" + v.Sign(ts, body)[3:]} {
		if got := v.Verify(body, ts, header); got.Verified() {
			t.Fatalf("header %q should not verify", header)
		}
	}

	missingTS := v.Verify(body, "", v.Sign("0", body))
	if !missingTS.SignatureValid {
		t.Fatalf("missing timestamp should be signed as %q", "0")
	}
	if missingTS.TimeClose {
		t.Fatalf("missing timestamp must not be time-close")
	}

	if got := v.Verify(body, "not-a-number", v.Sign("not-a-number", body)); got.TimeClose || got.Verified() {
		t.Fatalf("non-numeric timestamp must not verify: %+v", got)
	}
}

func TestVerifier_CustomReplayWindow(t *testing.T) {
	t.Parallel()

	now := int64(1_700_000_000)
	v := NewVerifier(testSecret, WithClock(fixedClock(now)), WithReplayWindow(time.Minute))
	body := []byte(`{}`)

	ts := strconv.FormatInt(now-59, 10)
	if !v.Verify(body, ts, v.Sign(ts, body)).Verified() {
		t.Fatalf("59s old request should be inside a 1m window")
	}
	ts = strconv.FormatInt(now-60, 10)
	if v.Verify(body, ts, v.Sign(ts, body)).Verified() {
		t.Fatalf("60s old request should be outside a 1m window")
	}
}
