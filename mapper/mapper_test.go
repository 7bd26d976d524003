/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapper

import (
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type basicConfig struct {
	Host string
	Port int
}

func TestUnmarshalBasic(t *testing.T) {
	src := `config {
  host "localhost";
  port 8080;
}`
	var cfg basicConfig
	require.NoError(t, Unmarshal([]byte(src), &cfg, DefaultOptions()))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestUnmarshalEmptyDocument(t *testing.T) {
	var cfg basicConfig
	err := Unmarshal([]byte("  \n"), &cfg, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no directives")
}

func TestUnmarshalRequiresStructPointer(t *testing.T) {
	var cfg basicConfig
	assert.Error(t, Unmarshal([]byte("c { host x; port 1; }"), cfg, DefaultOptions()))
	var n int
	assert.Error(t, Unmarshal([]byte("c { host x; port 1; }"), &n, DefaultOptions()))
}

func TestMarshalBasic(t *testing.T) {
	out, err := Marshal(basicConfig{Host: "localhost", Port: 8080}, DefaultOptions())
	require.NoError(t, err)
	want := "basicConfig {\n  host \"localhost\";\n  port 8080;\n}\n"
	assert.Equal(t, want, string(out))
}

func TestMarshalUnmarshalIdentity(t *testing.T) {
	in := basicConfig{Host: "example.com", Port: 443}
	out, err := Marshal(in, DefaultOptions())
	require.NoError(t, err)

	var back basicConfig
	require.NoError(t, Unmarshal(out, &back, DefaultOptions()))
	assert.Equal(t, in, back)
}

func TestStringArgumentStaysText(t *testing.T) {
	// A string that looks like a number must quote, so it reads back as
	// text rather than a bare word.
	type versioned struct {
		Version string
	}
	out, err := Marshal(versioned{Version: "1.10"}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), `version "1.10";`)

	var back versioned
	require.NoError(t, Unmarshal(out, &back, DefaultOptions()))
	assert.Equal(t, "1.10", back.Version)
}

func TestNamingPolicies(t *testing.T) {
	type wide struct {
		MaxPoolSize int
	}
	src := map[Naming]string{
		KebabCase:  "c { max-pool-size 7; }",
		SnakeCase:  "c { max_pool_size 7; }",
		CamelCase:  "c { maxPoolSize 7; }",
		AsDeclared: "c { MaxPoolSize 7; }",
	}
	for naming, text := range src {
		opts := DefaultOptions()
		opts.Naming = naming
		var w wide
		require.NoError(t, Unmarshal([]byte(text), &w, opts))
		assert.Equal(t, 7, w.MaxPoolSize, "naming %v", naming)
	}
}

func TestTagOverrides(t *testing.T) {
	type tagged struct {
		Host    string `conf:"hostname"`
		Ignored string `conf:"-"`
		Note    string `conf:",omitempty"`
	}
	var v tagged
	require.NoError(t, Unmarshal([]byte(`c { hostname web1; ignored nope; }`), &v, DefaultOptions()))
	assert.Equal(t, "web1", v.Host)
	assert.Empty(t, v.Ignored)
	assert.Empty(t, v.Note)

	out, err := Marshal(tagged{Host: "web1"}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "hostname")
	assert.NotContains(t, string(out), "note")
	assert.NotContains(t, string(out), "ignored")
}

func TestMissingField(t *testing.T) {
	var cfg basicConfig
	err := Unmarshal([]byte("c { host x; }"), &cfg, DefaultOptions())
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "port", missing.Field)
}

func TestPointerOptional(t *testing.T) {
	type withOpt struct {
		Host    string
		Timeout *int
	}

	var absent withOpt
	require.NoError(t, Unmarshal([]byte("c { host x; }"), &absent, DefaultOptions()))
	assert.Nil(t, absent.Timeout)

	var present withOpt
	require.NoError(t, Unmarshal([]byte("c { host x; timeout 30; }"), &present, DefaultOptions()))
	require.NotNil(t, present.Timeout)
	assert.Equal(t, 30, *present.Timeout)

	// A nil pointer produces no directive at all.
	out, err := Marshal(withOpt{Host: "x"}, DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "timeout")
}

func TestNestedStruct(t *testing.T) {
	type tls struct {
		Cert string
		Key  string
	}
	type server struct {
		Host string
		TLS  tls
	}
	src := `server {
  host example.com;
  tls {
    cert /etc/cert.pem;
    key /etc/key.pem;
  }
}`
	var s server
	require.NoError(t, Unmarshal([]byte(src), &s, DefaultOptions()))
	assert.Equal(t, "/etc/cert.pem", s.TLS.Cert)

	out, err := Marshal(s, DefaultOptions())
	require.NoError(t, err)
	var back server
	require.NoError(t, Unmarshal(out, &back, DefaultOptions()))
	assert.Equal(t, s, back)
}

func TestScalarSliceBothForms(t *testing.T) {
	type ported struct {
		Ports []int
	}

	var inline ported
	require.NoError(t, Unmarshal([]byte("c { ports 80 443; }"), &inline, DefaultOptions()))

	var repeated ported
	require.NoError(t, Unmarshal([]byte("c { ports 80; ports 443; }"), &repeated, DefaultOptions()))

	assert.Equal(t, inline, repeated)
	assert.Equal(t, []int{80, 443}, inline.Ports)
}

func TestScalarSliceMarshalsInline(t *testing.T) {
	type ported struct {
		Ports []int
	}
	out, err := Marshal(ported{Ports: []int{80, 443}}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "ports 80 443;")
}

func TestStructSlice(t *testing.T) {
	type upstream struct {
		Host string
		Port int
	}
	type pool struct {
		Upstreams []upstream `conf:"upstream"`
	}
	src := `pool {
  upstream { host a; port 1; }
  upstream { host b; port 2; }
}`
	var p pool
	require.NoError(t, Unmarshal([]byte(src), &p, DefaultOptions()))
	require.Len(t, p.Upstreams, 2)
	assert.Equal(t, upstream{Host: "b", Port: 2}, p.Upstreams[1])

	out, err := Marshal(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "upstream {"))
}

func TestConversionError(t *testing.T) {
	var cfg basicConfig
	err := Unmarshal([]byte("c { host x; port many; }"), &cfg, DefaultOptions())
	var conv *ConversionError
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, "port", conv.Field)
	assert.Equal(t, "many", conv.Value)
}

func TestStrictUnknownField(t *testing.T) {
	var cfg basicConfig
	opts := DefaultOptions()

	require.NoError(t, Unmarshal([]byte("c { host x; port 1; extra y; }"), &cfg, opts))

	opts.Strict = true
	err := Unmarshal([]byte("c { host x; port 1; extra y; }"), &cfg, opts)
	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "extra", unknown.Name)
}

func TestBoolSpellings(t *testing.T) {
	type flags struct {
		A, B, C, D bool
	}
	var f flags
	require.NoError(t, Unmarshal([]byte("c { a yes; b on; c 1; d true; }"), &f, DefaultOptions()))
	assert.True(t, f.A && f.B && f.C && f.D)

	var g flags
	err := Unmarshal([]byte("c { a maybe; b 0; c 0; d 0; }"), &g, DefaultOptions())
	var conv *ConversionError
	require.ErrorAs(t, err, &conv)
}

func TestDurationConverter(t *testing.T) {
	type timed struct {
		Interval time.Duration
	}
	var v timed
	require.NoError(t, Unmarshal([]byte("c { interval 1h30m; }"), &v, DefaultOptions()))
	assert.Equal(t, 90*time.Minute, v.Interval)

	out, err := Marshal(timed{Interval: 250 * time.Millisecond}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "interval 250ms;")
}

func TestTextMarshalerTypes(t *testing.T) {
	type addressed struct {
		IP net.IP
	}
	var v addressed
	require.NoError(t, Unmarshal([]byte("c { ip 192.0.2.1; }"), &v, DefaultOptions()))
	assert.Equal(t, "192.0.2.1", v.IP.String())

	out, err := Marshal(v, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), `ip "192.0.2.1";`)
}

// loudness exercises a registered custom converter.
type loudness int

type loudnessConverter struct{}

func (loudnessConverter) FromText(text string) (any, error) {
	switch text {
	case "quiet":
		return loudness(0), nil
	case "loud":
		return loudness(11), nil
	}
	return nil, &ConversionError{Value: text}
}

func (loudnessConverter) ToText(v any) (string, error) {
	if v.(loudness) >= 11 {
		return "loud", nil
	}
	return "quiet", nil
}

func (loudnessConverter) Quoted() bool { return false }

func TestRegisteredConverter(t *testing.T) {
	Register(reflect.TypeOf(loudness(0)), loudnessConverter{})

	type amp struct {
		Volume loudness
	}
	var a amp
	require.NoError(t, Unmarshal([]byte("c { volume loud; }"), &a, DefaultOptions()))
	assert.Equal(t, loudness(11), a.Volume)

	out, err := Marshal(a, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "volume loud;")
}

func TestArgsMode(t *testing.T) {
	type listen struct {
		Addresses []string `conf:",args"`
		Backlog   int
	}
	src := `listen 0.0.0.0:80 0.0.0.0:443 {
  backlog 128;
}`
	var l listen
	require.NoError(t, Unmarshal([]byte(src), &l, DefaultOptions()))
	assert.Equal(t, []string{"0.0.0.0:80", "0.0.0.0:443"}, l.Addresses)
	assert.Equal(t, 128, l.Backlog)

	d, err := ToDirective(l, "listen", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, d.Arguments, 2)
	assert.Equal(t, "0.0.0.0:80", d.Arguments[0].Value)
}

func TestFromDirectiveOmitEmptySlice(t *testing.T) {
	type listy struct {
		Names []string `conf:",omitempty"`
	}
	var v listy
	require.NoError(t, Unmarshal([]byte("c { }"), &v, DefaultOptions()))
	assert.Nil(t, v.Names)
}
