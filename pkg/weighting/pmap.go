package weighting

import (
	"github.com/spf13/cast"
)

const (
	KEY_CUSTOM_MODEL     = "custom_model"
	KEY_HEADING_PENALTY  = "heading_penalty"
	KEY_U_TURN_COSTS     = "u_turn_costs"
	KEY_CM_VERSION       = "cm_version"
	KEY_CM_CUSTOM_BYPASS = "cm_custom_bypass"

	CM_CUSTOM_BYPASS_ELEVATION = "elevation"
	CM_CUSTOM_BYPASS_CARBON    = "carbon"
)

// PMap loosely typed hints of a profile or a request.
type PMap map[string]interface{}

func NewPMap() PMap {
	return make(PMap)
}

func (m PMap) Put(key string, value interface{}) PMap {
	m[key] = value
	return m
}

// PutAll copies every entry of other, overwriting existing keys.
func (m PMap) PutAll(other map[string]interface{}) PMap {
	for k, v := range other {
		m[k] = v
	}
	return m
}

func (m PMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m PMap) GetObject(key string) (interface{}, bool) {
	v, ok := m[key]
	return v, ok
}

func (m PMap) GetString(key, def string) string {
	v, ok := m[key]
	if !ok {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

func (m PMap) GetInt(key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return i
}

func (m PMap) GetFloat64(key string, def float64) float64 {
	v, ok := m[key]
	if !ok {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def
	}
	return f
}

func (m PMap) GetBool(key string, def bool) bool {
	v, ok := m[key]
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}
