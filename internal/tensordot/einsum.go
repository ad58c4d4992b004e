package tensordot

import (
	"sort"
	"strings"

	"github.com/born-ml/tensornet/internal/tensor"
)

// equation is a parsed einsum expression.
type equation struct {
	inputs []string
	output string
}

func parseEquation(expr string, numOperands int) (equation, error) {
	const op = "einsum"

	expr = strings.ReplaceAll(expr, " ", "")
	if strings.Contains(expr, ".") {
		return equation{}, tensor.Argumentf(op, "ellipsis is not supported in %q", expr)
	}

	lhs, rhs, explicit := strings.Cut(expr, "->")
	eq := equation{inputs: strings.Split(lhs, ",")}
	if len(eq.inputs) != numOperands {
		return equation{}, tensor.Argumentf(op, "%q names %d operands but %d were given", expr, len(eq.inputs), numOperands)
	}

	counts := map[rune]int{}
	for _, term := range eq.inputs {
		for _, c := range term {
			if !isLabel(c) {
				return equation{}, tensor.Argumentf(op, "invalid subscript %q in %q", c, expr)
			}
			counts[c]++
		}
	}

	if explicit {
		seen := map[rune]bool{}
		for _, c := range rhs {
			if counts[c] == 0 {
				return equation{}, tensor.Argumentf(op, "output subscript %q does not appear in the inputs of %q", c, expr)
			}
			if seen[c] {
				return equation{}, tensor.Argumentf(op, "output subscript %q repeated in %q", c, expr)
			}
			seen[c] = true
		}
		eq.output = rhs
		return eq, nil
	}

	// Implicit mode: labels used exactly once, in alphabetical order.
	var once []rune
	for c, n := range counts {
		if n == 1 {
			once = append(once, c)
		}
	}
	sort.Slice(once, func(i, j int) bool { return once[i] < once[j] })
	eq.output = string(once)
	return eq, nil
}

func isLabel(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Einsum evaluates an Einstein summation such as "ij,jk->ik".
//
// Two-operand contractions without batch or diagonal labels are routed
// through Tensordot; everything else is evaluated by direct summation.
func Einsum(expr string, tensors ...*tensor.RawTensor) (*tensor.RawTensor, error) {
	const op = "einsum"

	if len(tensors) == 0 {
		return nil, tensor.Argumentf(op, "at least one operand required")
	}
	eq, err := parseEquation(expr, len(tensors))
	if err != nil {
		return nil, err
	}

	dtype := tensors[0].DType()
	for _, t := range tensors {
		if t.DType() != dtype {
			return nil, tensor.Argumentf(op, "operands have different dtypes: %s vs %s", dtype, t.DType())
		}
	}
	if !dtype.IsNumeric() {
		return nil, tensor.Unsupportedf(op, dtype, library)
	}

	dims := map[rune]int{}
	for i, term := range eq.inputs {
		labels := []rune(term)
		if len(labels) != tensors[i].Rank() {
			return nil, tensor.Argumentf(op, "subscripts %q do not match operand %d of shape %v", term, i, tensors[i].Shape())
		}
		for j, c := range labels {
			d := tensors[i].Shape()[j]
			if prev, ok := dims[c]; ok && prev != d {
				return nil, tensor.Mismatchf(op, "subscript %q has size %d and %d", c, prev, d)
			}
			dims[c] = d
		}
	}

	if axes, perm, ok := pairwise(eq); ok {
		out, err := Tensordot(tensors[0], tensors[1], axes)
		if err != nil {
			return nil, err
		}
		return permuteIfNeeded(out, perm), nil
	}

	return direct(eq, dims, dtype, tensors)
}

// pairwise reports whether a two-operand equation is a plain tensordot:
// every label appears either in both inputs and not in the output, or in
// exactly one input and in the output. It returns the contraction axes and
// the permutation from tensordot order to output order.
func pairwise(eq equation) ([2][]int, []int, bool) {
	if len(eq.inputs) != 2 {
		return [2][]int{}, nil, false
	}
	a, b := []rune(eq.inputs[0]), []rune(eq.inputs[1])
	if hasRepeats(a) || hasRepeats(b) {
		return [2][]int{}, nil, false
	}
	inOut := map[rune]bool{}
	for _, c := range eq.output {
		inOut[c] = true
	}
	posB := map[rune]int{}
	for i, c := range b {
		posB[c] = i
	}

	var axes [2][]int
	var order []rune // labels in tensordot result order
	shared := map[rune]bool{}
	for i, c := range a {
		if j, ok := posB[c]; ok {
			if inOut[c] {
				return [2][]int{}, nil, false
			}
			axes[0] = append(axes[0], i)
			axes[1] = append(axes[1], j)
			shared[c] = true
			continue
		}
		if !inOut[c] {
			return [2][]int{}, nil, false
		}
		order = append(order, c)
	}
	for _, c := range b {
		if shared[c] {
			continue
		}
		if !inOut[c] {
			return [2][]int{}, nil, false
		}
		order = append(order, c)
	}

	where := map[rune]int{}
	for i, c := range order {
		where[c] = i
	}
	perm := make([]int, 0, len(order))
	for _, c := range eq.output {
		perm = append(perm, where[c])
	}
	return axes, perm, true
}

func hasRepeats(labels []rune) bool {
	seen := map[rune]bool{}
	for _, c := range labels {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

type scalar interface {
	~float64 | ~complex128
}

func direct(eq equation, dims map[rune]int, dtype tensor.DataType, tensors []*tensor.RawTensor) (*tensor.RawTensor, error) {
	// Iteration order: output labels first, then summed labels.
	labels := []rune(eq.output)
	inOut := map[rune]bool{}
	for _, c := range labels {
		inOut[c] = true
	}
	var summed []rune
	for _, term := range eq.inputs {
		for _, c := range term {
			if !inOut[c] {
				inOut[c] = true
				summed = append(summed, c)
			}
		}
	}
	labels = append(labels, summed...)

	extents := make([]int, len(labels))
	for i, c := range labels {
		extents[i] = dims[c]
	}
	outShape := make(tensor.Shape, len(eq.output))
	copy(outShape, extents[:len(eq.output)])

	// Per operand, the flat stride contributed by each label. Repeated
	// labels within a term add up, which walks the diagonal.
	walks := make([][]int, len(tensors))
	for i, term := range eq.inputs {
		strides := tensors[i].Strides()
		walk := make([]int, len(labels))
		for j, c := range []rune(term) {
			for k, l := range labels {
				if l == c {
					walk[k] += strides[j]
				}
			}
		}
		walks[i] = walk
	}
	outWalk := make([]int, len(labels))
	copy(outWalk, outShape.ComputeStrides())

	if dtype.IsComplex() {
		ops := make([][]complex128, len(tensors))
		for i, t := range tensors {
			ops[i] = t.Complex128s()
		}
		out := sumProducts(ops, walks, outWalk, extents, outShape.NumElements())
		return tensor.FromComplex128s(outShape, dtype, out)
	}

	ops := make([][]float64, len(tensors))
	for i, t := range tensors {
		data, err := t.Float64s()
		if err != nil {
			return nil, tensor.Unsupportedf("einsum", dtype, library)
		}
		ops[i] = data
	}
	out := sumProducts(ops, walks, outWalk, extents, outShape.NumElements())
	return tensor.FromFloat64s(outShape, dtype, out)
}

func sumProducts[T scalar](ops [][]T, walks [][]int, outWalk, extents []int, outSize int) []T {
	out := make([]T, outSize)
	total := 1
	for _, e := range extents {
		total *= e
	}
	if total == 0 {
		return out
	}

	coords := make([]int, len(extents))
	pos := make([]int, len(ops))
	outPos := 0
	for step := 0; step < total; step++ {
		prod := T(1)
		for i, data := range ops {
			prod *= data[pos[i]]
		}
		out[outPos] += prod

		for d := len(extents) - 1; d >= 0; d-- {
			coords[d]++
			for i := range pos {
				pos[i] += walks[i][d]
			}
			outPos += outWalk[d]
			if coords[d] < extents[d] {
				break
			}
			for i := range pos {
				pos[i] -= walks[i][d] * coords[d]
			}
			outPos -= outWalk[d] * coords[d]
			coords[d] = 0
		}
	}
	return out
}
