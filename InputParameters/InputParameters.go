package InputParameters

import (
	"fmt"
	"math"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gospectral/interpolation"
	"github.com/notargets/gospectral/spectral"
)

// Parameters obtained from the YAML input file of the interpolate command.
// ghodss/yaml converts YAML to JSON before decoding, so the keys follow the
// json tags.
type InterpolationParameters struct {
	Title       string              `json:"Title"`
	Mesh        MeshParameters      `json:"Mesh"`
	Elements    []interpolation.Box `json:"Elements"`
	Targets     []TargetParameters  `json:"Targets"`
	TemporalIDs []float64           `json:"TemporalIDs"`
	Field       FieldParameters     `json:"Field"`
}

type MeshParameters struct {
	Basis      string `json:"Basis"`
	Quadrature string `json:"Quadrature"`
	Extents    []int  `json:"Extents"` // One per dimension
}

// TargetParameters names a target and exactly one point generator.
type TargetParameters struct {
	Tag               string                           `json:"Tag"`
	LineSegment       *interpolation.LineSegment       `json:"LineSegment,omitempty"`
	WedgeSectionTorus *interpolation.WedgeSectionTorus `json:"WedgeSectionTorus,omitempty"`
}

// FieldParameters is a polynomial in space and time, the sum over Terms of
// Coefficient * t^TimePower * Π x_d^Powers[d].
type FieldParameters struct {
	Name  string      `json:"Name"`
	Terms []FieldTerm `json:"Terms"`
}

type FieldTerm struct {
	Coefficient float64 `json:"Coefficient"`
	Powers      []int   `json:"Powers"`
	TimePower   int     `json:"TimePower"`
}

func (ip *InterpolationParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("parsing interpolation parameters: %w", err)
	}
	if ip.Field.Name == "" {
		ip.Field.Name = "u"
	}
	if err = ip.Validate(); err != nil {
		return fmt.Errorf("invalid interpolation parameters: %w", err)
	}
	return
}

func (ip *InterpolationParameters) Validate() (err error) {
	if _, err = ip.BuildMesh(); err != nil {
		return
	}
	if _, err = ip.BuildElements(); err != nil {
		return
	}
	if _, err = ip.BuildTargets(); err != nil {
		return
	}
	if len(ip.TemporalIDs) == 0 {
		return fmt.Errorf("no temporal ids")
	}
	dim := len(ip.Mesh.Extents)
	for i, term := range ip.Field.Terms {
		if len(term.Powers) != dim {
			return fmt.Errorf("field term %d has %d powers, mesh is %d dimensional", i, len(term.Powers), dim)
		}
	}
	return
}

func (ip *InterpolationParameters) BuildMesh() (m spectral.Mesh, err error) {
	var (
		b   spectral.Basis
		q   spectral.Quadrature
		dim = len(ip.Mesh.Extents)
	)
	if b, err = spectral.ParseBasis(ip.Mesh.Basis); err != nil {
		return
	}
	if q, err = spectral.ParseQuadrature(ip.Mesh.Quadrature); err != nil {
		return
	}
	if dim < 1 || dim > spectral.MaxMeshDim {
		err = fmt.Errorf("mesh needs between 1 and %d extents, have %v", spectral.MaxMeshDim, ip.Mesh.Extents)
		return
	}
	var (
		nMin = spectral.MinimumNumberOfPoints(b, q)
		nMax = spectral.MaximumNumberOfPoints(b)
	)
	for _, n := range ip.Mesh.Extents {
		if n < nMin || n > nMax {
			err = fmt.Errorf("%v-%v mesh extent %d outside of [%d, %d]", b, q, n, nMin, nMax)
			return
		}
	}
	bases := make([]spectral.Basis, dim)
	quadratures := make([]spectral.Quadrature, dim)
	for d := range bases {
		bases[d], quadratures[d] = b, q
	}
	m = spectral.NewMesh(ip.Mesh.Extents, bases, quadratures)
	return
}

func (ip *InterpolationParameters) BuildElements() (be interpolation.BoxElements, err error) {
	if len(ip.Elements) == 0 {
		return nil, fmt.Errorf("no elements")
	}
	if be, err = interpolation.NewBoxElements(ip.Elements...); err != nil {
		return
	}
	if dim := len(ip.Elements[0].Lower); dim != len(ip.Mesh.Extents) {
		err = fmt.Errorf("elements are %d dimensional, mesh is %d dimensional", dim, len(ip.Mesh.Extents))
	}
	return
}

func (ip *InterpolationParameters) BuildTargets() (targets map[string]interpolation.TargetPoints, err error) {
	if len(ip.Targets) == 0 {
		return nil, fmt.Errorf("no targets")
	}
	targets = make(map[string]interpolation.TargetPoints, len(ip.Targets))
	for i, tp := range ip.Targets {
		var points interpolation.TargetPoints
		switch {
		case tp.Tag == "":
			err = fmt.Errorf("target %d has no tag", i)
		case targets[tp.Tag] != nil:
			err = fmt.Errorf("duplicate target tag %q", tp.Tag)
		case (tp.LineSegment == nil) == (tp.WedgeSectionTorus == nil):
			err = fmt.Errorf("target %q needs exactly one of LineSegment or WedgeSectionTorus", tp.Tag)
		case tp.LineSegment != nil:
			points, err = *tp.LineSegment, tp.LineSegment.Validate()
		default:
			points, err = *tp.WedgeSectionTorus, tp.WedgeSectionTorus.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", tp.Tag, err)
		}
		targets[tp.Tag] = points
	}
	return
}

// Evaluate returns the field at physical point x and time t.
func (fp FieldParameters) Evaluate(x []float64, t float64) (val float64) {
	for _, term := range fp.Terms {
		v := term.Coefficient * math.Pow(t, float64(term.TimePower))
		for d, p := range term.Powers {
			v *= math.Pow(x[d], float64(p))
		}
		val += v
	}
	return
}

func (ip *InterpolationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s-%s]\t= Mesh Basis-Quadrature\n", ip.Mesh.Basis, ip.Mesh.Quadrature)
	fmt.Printf("%v\t\t\t= Mesh Extents\n", ip.Mesh.Extents)
	fmt.Printf("[%d]\t\t\t\t= Number of Elements\n", len(ip.Elements))
	fmt.Printf("%v\t\t= Temporal IDs\n", ip.TemporalIDs)
	tags := make([]string, len(ip.Targets))
	kinds := make(map[string]string, len(ip.Targets))
	for i, tp := range ip.Targets {
		tags[i] = tp.Tag
		switch {
		case tp.LineSegment != nil:
			kinds[tp.Tag] = fmt.Sprintf("LineSegment%+v", *tp.LineSegment)
		case tp.WedgeSectionTorus != nil:
			kinds[tp.Tag] = fmt.Sprintf("WedgeSectionTorus%+v", *tp.WedgeSectionTorus)
		}
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("Targets[%s] = %s\n", tag, kinds[tag])
	}
}
