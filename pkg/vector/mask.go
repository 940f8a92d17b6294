package vector

// ToBooleanMask converts v to a boolean vector.
//
// Categorical elements are true when equal to positive. Numeric and integer
// elements are true when non-zero (NaN is non-zero). Boolean vectors are
// returned as a copy. positive is ignored for non-categorical vectors; an empty
// positive against a categorical vector matches only empty labels.
func ToBooleanMask(v Vector, positive string) Boolean {
	switch vec := v.(type) {
	case Boolean:
		mask := make(Boolean, len(vec))
		copy(mask, vec)

		return mask
	case Numeric:
		mask := make(Boolean, len(vec))
		for i, x := range vec {
			mask[i] = x != 0
		}

		return mask
	case Integer:
		mask := make(Boolean, len(vec))
		for i, x := range vec {
			mask[i] = x != 0
		}

		return mask
	case Categorical:
		mask := make(Boolean, len(vec.Values))
		for i, label := range vec.Values {
			mask[i] = label == positive
		}

		return mask
	default:
		return nil
	}
}

// Binarize turns scores into hard predictions: an element is positive when it
// is greater than or equal to threshold.
func Binarize(scores Numeric, threshold float64) Boolean {
	out := make(Boolean, len(scores))
	for i, s := range scores {
		out[i] = s >= threshold
	}

	return out
}

// Not returns the element-wise negation of mask.
func Not(mask Boolean) Boolean {
	out := make(Boolean, len(mask))
	for i, b := range mask {
		out[i] = !b
	}

	return out
}

// CountTrue returns the number of true elements.
func CountTrue(mask Boolean) int {
	n := 0

	for _, b := range mask {
		if b {
			n++
		}
	}

	return n
}
