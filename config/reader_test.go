package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestFormatFromPath(t *testing.T) {
	for path, expected := range map[string]Format{
		"a.json":          FormatJSON5,
		"dir/b.JSON5":     FormatJSON5,
		"c.yaml":          FormatYAML,
		"/abs/path/d.yml": FormatYAML,
	} {
		format, err := FormatFromPath(path)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, format, test.ShouldEqual, expected)
	}

	_, err := FormatFromPath("request.toml")
	test.That(t, err, test.ShouldBeError, `unsupported request file extension ".toml"`)
}

func TestFromReaderValidate(t *testing.T) {
	_, err := FromReader("somepath.json", strings.NewReader(""))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "json5")

	_, err = FromReader("somepath.json", strings.NewReader(`{"waypoints": 1}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unmarshal")

	_, err = FromReader("somepath.json", strings.NewReader(`{}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"waypoints" is required`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"max_velocity" is required`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"max_acceleration" is required`)

	_, err = FromReader("somepath.yaml", strings.NewReader("waypoints: []\nmax_speed: 2\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_speed")

	req, err := FromReader("dir/straight.json", strings.NewReader(`{
		// comments are allowed
		"waypoints": [{"x": 0, "y": 0}, {"x": 10, "y": 0, "heading_degs": 0}],
		"max_velocity": 5,
		"max_acceleration": 4,
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, req, test.ShouldResemble, &Request{
		Name:            "straight",
		Waypoints:       []Waypoint{{}, {X: 10}},
		MaxVelocity:     5,
		MaxAcceleration: 4,
	})
}

func TestParseFormatsAgree(t *testing.T) {
	fromJSON, err := Parse([]byte(`{
		"name": "agree",
		"waypoints": [{"x": 1, "y": 2, "heading_degs": 90}, {"x": 3, "y": 4, "heading_degs": 45}],
		"reversed": true,
		"max_velocity": 2,
		"max_acceleration": 1,
		"sampler": {"max_dx": 0.1, "max_dy": 0.01, "max_dtheta_degs": 2},
		"constraints": [{"type": "velocity_limit", "attributes": {"max": 2}}]
	}`), FormatJSON5)
	test.That(t, err, test.ShouldBeNil)

	fromYAML, err := Parse([]byte(`
name: agree
waypoints:
  - {x: 1, y: 2, heading_degs: 90}
  - {x: 3, y: 4, heading_degs: 45}
reversed: true
max_velocity: 2
max_acceleration: 1
sampler: {max_dx: 0.1, max_dy: 0.01, max_dtheta_degs: 2}
constraints:
  - type: velocity_limit
    attributes: {max: 2}
`), FormatYAML)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, fromYAML.Name, test.ShouldEqual, fromJSON.Name)
	test.That(t, fromYAML.Waypoints, test.ShouldResemble, fromJSON.Waypoints)
	test.That(t, fromYAML.Sampler, test.ShouldResemble, fromJSON.Sampler)
	test.That(t, fromYAML.Reversed, test.ShouldBeTrue)
	test.That(t, fromYAML.Constraints[0].Type, test.ShouldEqual, fromJSON.Constraints[0].Type)

	// yaml decodes 2 as an int and json5 as a float64; both build the same constraint
	a, err := fromJSON.Build()
	test.That(t, err, test.ShouldBeNil)
	b, err := fromYAML.Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Constraints, test.ShouldResemble, a.Constraints)
}

func TestReadExpandsEnvironment(t *testing.T) {
	t.Setenv("TRAJGEN_TEST_MAX_VELOCITY", "1.75")
	path := filepath.Join(t.TempDir(), "env.yaml")
	contents := "waypoints: [{x: 0, y: 0}, {x: 1, y: 0}]\nmax_velocity: ${TRAJGEN_TEST_MAX_VELOCITY}\nmax_acceleration: 1\n"
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)

	req, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, req.Name, test.ShouldEqual, "env")
	test.That(t, req.MaxVelocity, test.ShouldEqual, 1.75)
}

func TestReadSamples(t *testing.T) {
	for _, path := range []string{"../etc/requests/s_curve.json5", "../etc/requests/back_out.yaml"} {
		t.Run(path, func(t *testing.T) {
			req, err := Read(path)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, req.Name, test.ShouldNotBeEmpty)
			_, err = req.Build()
			test.That(t, err, test.ShouldBeNil)
		})
	}

	_, err := Read("../etc/requests/missing.yaml")
	test.That(t, err, test.ShouldNotBeNil)
}
