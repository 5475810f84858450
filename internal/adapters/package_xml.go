package adapters

import (
	"bytes"
	"encoding/xml"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

type PackageXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]packageXMLCacheEntry
}

func NewPackageXMLAdapter() *PackageXMLAdapter {
	return &PackageXMLAdapter{cache: map[string]packageXMLCacheEntry{}}
}

type packageXML struct {
	XMLName     xml.Name        `xml:"package"`
	Format      string          `xml:"format,attr,omitempty"`
	Name        string          `xml:"name"`
	Version     string          `xml:"version"`
	Description string          `xml:"description"`
	Maintainers []maintainerTag `xml:"maintainer"`
	Licenses    []string        `xml:"license"`

	// Standard ROS dependency tags (REP-149 / REP-140)
	BuildtoolDepend []simpleDepend `xml:"buildtool_depend,omitempty"`
	Depend          []simpleDepend `xml:"depend,omitempty"`
	ExecDepend      []simpleDepend `xml:"exec_depend,omitempty"`
	BuildDepend     []simpleDepend `xml:"build_depend,omitempty"`
	BuildExportDep  []simpleDepend `xml:"build_export_depend,omitempty"`
	RunDepend       []simpleDepend `xml:"run_depend,omitempty"`
	TestDepend      []simpleDepend `xml:"test_depend,omitempty"`

	Export *exportSection `xml:"export,omitempty"`
}

type maintainerTag struct {
	Email string `xml:"email,attr"`
	Name  string `xml:",chardata"`
}

type exportSection struct {
	BuildType string `xml:"build_type"`
}

type simpleDepend struct {
	Value      string `xml:",chardata"`
	VersionLt  string `xml:"version_lt,attr,omitempty"`
	VersionLte string `xml:"version_lte,attr,omitempty"`
	VersionEq  string `xml:"version_eq,attr,omitempty"`
	VersionGte string `xml:"version_gte,attr,omitempty"`
	VersionGt  string `xml:"version_gt,attr,omitempty"`
}

type packageXMLCacheEntry struct {
	modTime time.Time
	info    types.PackageXMLInfo
}

func (a *PackageXMLAdapter) ParseROSTags(paths []string) ([]types.ROSTagDependency, error) {
	var result []types.ROSTagDependency
	for _, path := range paths {
		entry, err := a.loadPackageXML(path)
		if err != nil {
			return nil, err
		}
		result = append(result, entry.info.Dependencies...)
	}
	return result, nil
}

func (a *PackageXMLAdapter) ParsePackageInfo(path string) (types.PackageXMLInfo, error) {
	entry, err := a.loadPackageXML(path)
	if err != nil {
		return types.PackageXMLInfo{}, err
	}
	return entry.info, nil
}

func (a *PackageXMLAdapter) RenderPackageXML(meta types.Metadata, deps []types.PackageDependency) ([]byte, error) {
	if strings.TrimSpace(meta.Name) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required to render package.xml")
	}
	pkg := packageXML{
		Format:      "3",
		Name:        meta.Name,
		Version:     meta.Version,
		Description: meta.Description,
		Licenses:    []string{meta.License},
		BuildtoolDepend: []simpleDepend{
			{Value: "ament_cmake"},
		},
		Export: &exportSection{BuildType: "ament_cmake"},
	}
	if strings.TrimSpace(pkg.Description) == "" {
		pkg.Description = meta.Name
	}
	if strings.TrimSpace(meta.License) == "" {
		pkg.Licenses = []string{"TODO: License declaration"}
	}
	for _, maintainer := range meta.Maintainers {
		pkg.Maintainers = append(pkg.Maintainers, parseMaintainer(maintainer))
	}
	if len(pkg.Maintainers) == 0 {
		pkg.Maintainers = []maintainerTag{{Name: "unknown", Email: "unknown@localhost"}}
	}
	for _, dep := range deps {
		tag := simpleDepend{Value: dep.Name}
		for _, c := range dep.Constraints {
			applyConstraintAttr(&tag, c)
		}
		pkg.Depend = append(pkg.Depend, tag)
	}

	body, err := xml.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render package.xml").
			WithCause(err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<?xml-model href="http://download.ros.org/schema/package_format3.xsd" schematypens="http://www.w3.org/2001/XMLSchema"?>` + "\n")
	buf.Write(body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func (a *PackageXMLAdapter) loadPackageXML(path string) (packageXMLCacheEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return packageXMLCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return packageXMLCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	var pkg packageXML
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return packageXMLCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package.xml").
			WithCause(err)
	}
	entry := packageXMLCacheEntry{
		modTime: info.ModTime(),
		info: types.PackageXMLInfo{
			Name:         strings.TrimSpace(pkg.Name),
			Version:      strings.TrimSpace(pkg.Version),
			Description:  strings.TrimSpace(pkg.Description),
			Dependencies: collectROSTags(&pkg),
		},
	}
	for _, maintainer := range pkg.Maintainers {
		if name := strings.TrimSpace(maintainer.Name); name != "" {
			entry.info.Maintainers = append(entry.info.Maintainers, name)
		}
	}
	for _, license := range pkg.Licenses {
		if license = strings.TrimSpace(license); license != "" {
			entry.info.Licenses = append(entry.info.Licenses, license)
		}
	}

	a.mu.Lock()
	a.cache[path] = entry
	a.mu.Unlock()
	return entry, nil
}

// collectROSTags extracts all standard ROS dependency tags from the
// parsed package.xml and returns them as ROSTagDependency entries.
func collectROSTags(pkg *packageXML) []types.ROSTagDependency {
	var deps []types.ROSTagDependency
	add := func(tags []simpleDepend, scope types.ROSDepScope) {
		for _, dep := range tags {
			key := strings.TrimSpace(dep.Value)
			if key == "" {
				continue
			}
			deps = append(deps, types.ROSTagDependency{
				Key:         key,
				Scope:       scope,
				Constraints: constraintsFromAttrs(dep),
			})
		}
	}
	add(pkg.Depend, types.ROSDepScopeAll)
	add(pkg.ExecDepend, types.ROSDepScopeExec)
	add(pkg.BuildDepend, types.ROSDepScopeBuild)
	add(pkg.BuildExportDep, types.ROSDepScopeBuildExec)
	add(pkg.RunDepend, types.ROSDepScopeExec)
	add(pkg.TestDepend, types.ROSDepScopeTest)
	return deps
}

func constraintsFromAttrs(dep simpleDepend) []types.Constraint {
	var constraints []types.Constraint
	attrs := []struct {
		op    types.ConstraintOp
		value string
	}{
		{types.ConstraintOpLt, dep.VersionLt},
		{types.ConstraintOpLte, dep.VersionLte},
		{types.ConstraintOpEq, dep.VersionEq},
		{types.ConstraintOpGte, dep.VersionGte},
		{types.ConstraintOpGt, dep.VersionGt},
	}
	for _, attr := range attrs {
		if value := strings.TrimSpace(attr.value); value != "" {
			constraints = append(constraints, types.Constraint{Op: attr.op, Version: value})
		}
	}
	return constraints
}

func applyConstraintAttr(tag *simpleDepend, c types.Constraint) {
	switch c.Op {
	case types.ConstraintOpLt:
		tag.VersionLt = c.Version
	case types.ConstraintOpLte:
		tag.VersionLte = c.Version
	case types.ConstraintOpEq:
		tag.VersionEq = c.Version
	case types.ConstraintOpGte:
		tag.VersionGte = c.Version
	case types.ConstraintOpGt:
		tag.VersionGt = c.Version
	}
}

// parseMaintainer splits "Jane Doe <jane@example.com>".
func parseMaintainer(value string) maintainerTag {
	trimmed := strings.TrimSpace(value)
	open := strings.Index(trimmed, "<")
	closing := strings.LastIndex(trimmed, ">")
	if open == -1 || closing < open {
		return maintainerTag{Name: trimmed, Email: "unknown@localhost"}
	}
	return maintainerTag{
		Name:  strings.TrimSpace(trimmed[:open]),
		Email: strings.TrimSpace(trimmed[open+1 : closing]),
	}
}

var _ ports.PackageXMLPort = (*PackageXMLAdapter)(nil)
