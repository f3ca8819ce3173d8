// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"glbind.org/internal/gl"
)

// SupportedExtensions are the extensions Normalize tries to merge.
var SupportedExtensions = []string{
	"ANGLE_instanced_arrays",
	"EXT_blend_minmax",
	"EXT_color_buffer_float",
	"EXT_color_buffer_half_float",
	"EXT_disjoint_timer_query",
	"EXT_disjoint_timer_query_webgl2",
	"EXT_frag_depth",
	"EXT_sRGB",
	"EXT_shader_texture_lod",
	"EXT_texture_filter_anisotropic",
	"OES_element_index_uint",
	"OES_standard_derivatives",
	"OES_texture_float",
	"OES_texture_float_linear",
	"OES_texture_half_float",
	"OES_texture_half_float_linear",
	"OES_vertex_array_object",
	"WEBGL_color_buffer_float",
	"WEBGL_compressed_texture_atc",
	"WEBGL_compressed_texture_etc1",
	"WEBGL_compressed_texture_pvrtc",
	"WEBGL_compressed_texture_s3tc",
	"WEBGL_compressed_texture_s3tc_srgb",
	"WEBGL_depth_texture",
	"WEBGL_draw_buffers",
}

var (
	acquireKinds = []Kind{WebGL, ExperimentalWebGL}
	createKinds  = []Kind{WebGL2, WebGL, ExperimentalWebGL}
)

// Initializer acquires contexts and merges extensions onto them. It
// remembers the constant names of every context type it has seen and
// the extensions already merged onto every context.
type Initializer struct {
	// Extensions overrides SupportedExtensions.
	Extensions []string
	// Logger is used before a context exists. Nil means slog.Default().
	Logger *slog.Logger

	enums  map[string]*enumTable
	merged map[*Context]map[string]bool
}

// NewInitializer returns an empty Initializer.
func NewInitializer() *Initializer {
	return &Initializer{
		enums:  make(map[string]*enumTable),
		merged: make(map[*Context]map[string]bool),
	}
}

// Acquire returns a WebGL 1 class context from s.
func (in *Initializer) Acquire(s Surface, opts Options) (*Context, error) {
	return in.first(s, opts, acquireKinds)
}

// Create returns the most capable context s provides, preferring
// WebGL 2 class contexts.
func (in *Initializer) Create(s Surface, opts Options) (*Context, error) {
	return in.first(s, opts, createKinds)
}

func (in *Initializer) first(s Surface, opts Options, kinds []Kind) (*Context, error) {
	var errs []error
	for _, k := range kinds {
		f, err := s.Context(k, opts)
		if err != nil {
			in.logger(opts).Debug("glctx: context kind unavailable", "kind", k, "err", err)
			errs = append(errs, err)
			continue
		}
		c := New(f, k, opts)
		if !opts.SkipExtensions {
			in.Normalize(c)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrNoContext, errors.Join(errs...))
}

func (in *Initializer) logger(opts Options) *slog.Logger {
	switch {
	case opts.Logger != nil:
		return opts.Logger
	case in.Logger != nil:
		return in.Logger
	}
	return slog.Default()
}

// Normalize merges every supported extension the context provides.
// Constants and functions are added under their names without the
// vendor suffix; names already present are left alone. Calling
// Normalize again on the same context does nothing.
func (in *Initializer) Normalize(c *Context) {
	if in.enums == nil {
		in.enums = make(map[string]*enumTable)
	}
	if in.merged == nil {
		in.merged = make(map[*Context]map[string]bool)
	}
	typ := c.ContextType()
	table, ok := in.enums[typ]
	if !ok {
		table = newEnumTable(c.core)
		in.enums[typ] = table
	}
	c.enums = table
	done := in.merged[c]
	if done == nil {
		done = make(map[string]bool)
		in.merged[c] = done
	}
	names := in.Extensions
	if names == nil {
		names = SupportedExtensions
	}
	for _, name := range names {
		if done[name] {
			continue
		}
		ext, ok := c.GetExtension(name)
		if !ok {
			continue
		}
		done[name] = true
		in.merge(c, table, ext)
	}
}

func (in *Initializer) merge(c *Context, table *enumTable, ext gl.Extension) {
	name := ext.Name()
	vendor, _, _ := strings.Cut(name, "_")
	fnSuffix, enumSuffix := vendor, "_"+vendor
	for _, m := range ext.Members() {
		suffix := enumSuffix
		if m.IsFunc() {
			suffix = fnSuffix
		}
		// Not every member carries the suffix, for example those of
		// WEBGL_compressed_texture_s3tc.
		key := strings.TrimSuffix(m.Key, suffix)
		if c.has(key) {
			if v, ok := c.Enum(key); ok && !m.IsFunc() && v != m.Value {
				c.Log.Warn("glctx: extension constant differs from existing value",
					"name", key, "existing", v, "value", m.Value, "member", m.Key, "extension", name)
			}
			continue
		}
		if m.IsFunc() {
			c.funcs[key] = m.Func
		} else {
			c.consts[key] = m.Value
			table.add(key, m.Value)
		}
	}
	c.exts[name] = ext
}

// enumTable maps constant values back to their names.
type enumTable struct {
	names map[gl.Enum]string
}

func newEnumTable(consts map[string]gl.Enum) *enumTable {
	t := &enumTable{names: make(map[gl.Enum]string)}
	keys := maps.Keys(consts)
	slices.Sort(keys)
	for _, k := range keys {
		t.add(k, consts[k])
	}
	return t
}

func (t *enumTable) add(name string, v gl.Enum) {
	if existing, ok := t.names[v]; ok {
		for _, n := range strings.Split(existing, " | ") {
			if n == name {
				return
			}
		}
		t.names[v] = existing + " | " + name
		return
	}
	t.names[v] = name
}

func (t *enumTable) String(v gl.Enum) string {
	if n, ok := t.names[v]; ok {
		return n
	}
	return fmt.Sprintf("0x%x", uint(v))
}
