package quadlet

// Merge combines base and override into a new mapping. Keys from base keep
// their order; keys only present in override follow in override order.
// For a key present on both sides the value is chosen by mergeValue.
// Neither input is modified and the result shares no lists or mappings with them.
func Merge(base, override *Mapping) *Mapping {
	result := NewMapping()

	for _, key := range base.Keys() {
		baseValue, _ := base.Get(key)
		overrideValue, exists := override.Get(key)
		if !exists {
			result.Set(key, clone(baseValue))
			continue
		}
		result.Set(key, mergeValue(baseValue, overrideValue))
	}

	for _, key := range override.Keys() {
		if base.Has(key) {
			continue
		}
		overrideValue, _ := override.Get(key)
		result.Set(key, clone(overrideValue))
	}

	return result
}

// MergeAll folds layers from left to right, so later layers override earlier ones.
func MergeAll(layers ...*Mapping) *Mapping {
	result := NewMapping()
	for _, layer := range layers {
		result = Merge(result, layer)
	}
	return result
}

// mergeValue resolves a key present on both sides:
//   - mapping + mapping: recursive merge
//   - list + list: base elements followed by override elements
//   - equal scalars: kept
//   - null on either side: the other side
//   - list + scalar of the list's element kind: scalar appended (or prepended
//     when the scalar is the base)
//   - anything else: override
func mergeValue(base, override Value) Value {
	baseMap, baseIsMap := base.(*Mapping)
	overrideMap, overrideIsMap := override.(*Mapping)
	if baseIsMap && overrideIsMap {
		return Merge(baseMap, overrideMap)
	}

	baseList, baseIsList := base.(List)
	overrideList, overrideIsList := override.(List)
	if baseIsList && overrideIsList {
		merged := make(List, 0, len(baseList)+len(overrideList))
		merged = append(merged, baseList...)
		return append(merged, overrideList...)
	}

	if base.Kind().IsScalar() && Equal(base, override) {
		return base
	}

	if base.Kind() == KindNull {
		return clone(override)
	}
	if override.Kind() == KindNull {
		return clone(base)
	}

	if baseIsList && acceptsScalar(baseList, override) {
		merged := make(List, 0, len(baseList)+1)
		merged = append(merged, baseList...)
		return append(merged, override)
	}
	if overrideIsList && acceptsScalar(overrideList, base) {
		merged := make(List, 0, len(overrideList)+1)
		merged = append(merged, base)
		return append(merged, overrideList...)
	}

	// The two sides cannot be combined; the override always takes precedence.
	return clone(override)
}

// acceptsScalar reports whether v can join l without breaking homogeneity.
func acceptsScalar(l List, v Value) bool {
	if !v.Kind().IsScalar() {
		return false
	}
	return len(l) == 0 || l.ElemKind() == v.Kind()
}
