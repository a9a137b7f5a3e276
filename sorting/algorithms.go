package sorting

import "fmt"

// Algorithm selects one of the animated sorting algorithms.
type Algorithm int

const (
	Bubble Algorithm = iota
	Quick
	Merge
)

var algorithmNames = []string{"Bubble Sort", "Quick Sort", "Merge Sort"}

func (a Algorithm) String() string {
	if a < Bubble || a > Merge {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// AlgorithmNames returns the display names in selector order.
func AlgorithmNames() []string {
	return append([]string(nil), algorithmNames...)
}

// ParseAlgorithm maps a display name back to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return Bubble, fmt.Errorf("unknown algorithm %q", name)
}

// Run executes the algorithm over the stepper's model. It returns the
// context error when the run was cancelled mid-flight and nil on
// natural completion. Drivers hold no UI state: every observable
// action goes through the stepper.
func (a Algorithm) Run(s *Stepper) error {
	switch a {
	case Quick:
		return quickSort(s, 0, s.Len()-1)
	case Merge:
		return mergeSort(s, 0, s.Len()-1, make([]int, s.Len()))
	default:
		return bubbleSort(s)
	}
}

// bubbleSort confirms positions incrementally: after each pass the pass
// boundary is final. A pass with no swap proves the remaining prefix is
// already ordered, which is swept sorted in one go.
func bubbleSort(s *Stepper) error {
	n := s.Len()
	if n == 0 {
		return nil
	}
	for end := n - 1; end > 0; end-- {
		if err := s.Err(); err != nil {
			return err
		}
		swapped := false
		for i := 0; i < end; i++ {
			if err := s.Highlight(i, i+1); err != nil {
				return err
			}
			// Strictly greater: equal neighbors never swap.
			if s.Value(i) > s.Value(i+1) {
				if err := s.Swap(i, i+1); err != nil {
					return err
				}
				swapped = true
			}
		}
		if err := s.MarkSorted(end); err != nil {
			return err
		}
		if !swapped {
			for k := end - 1; k >= 0; k-- {
				if err := s.MarkSorted(k); err != nil {
					return err
				}
			}
			break
		}
	}
	if err := s.MarkSorted(0); err != nil {
		return err
	}
	s.ClearHighlight()
	return nil
}

// quickSort uses the Lomuto scheme with the last element as pivot.
// Positions are not confirmed incrementally: partitioning only proves a
// position final once the whole recursion finishes, so confirmation is
// deferred to run completion.
func quickSort(s *Stepper, low, high int) error {
	if err := s.Err(); err != nil {
		return err
	}
	if low >= high {
		return nil
	}
	p, err := partition(s, low, high)
	if err != nil {
		return err
	}
	if err := quickSort(s, low, p-1); err != nil {
		return err
	}
	return quickSort(s, p+1, high)
}

func partition(s *Stepper, low, high int) (int, error) {
	pivot := s.Value(high)
	i := low - 1

	for j := low; j < high; j++ {
		if err := s.Highlight(j, high); err != nil {
			return low, err
		}
		if s.Value(j) <= pivot {
			i++
			if i != j {
				if err := s.Highlight(i, j); err != nil {
					return low, err
				}
				if err := s.Swap(i, j); err != nil {
					return low, err
				}
			}
		}
	}

	if i+1 != high {
		if err := s.Highlight(i+1, high); err != nil {
			return low, err
		}
		if err := s.Swap(i+1, high); err != nil {
			return low, err
		}
	}

	s.ClearHighlight()
	return i + 1, nil
}

// mergeSort is the classic top-down split. One auxiliary buffer the
// size of the full array is shared across all recursive calls. Like
// quick sort, confirmation is deferred to run completion.
func mergeSort(s *Stepper, left, right int, buf []int) error {
	if err := s.Err(); err != nil {
		return err
	}
	if left >= right {
		return nil
	}
	mid := left + (right-left)/2
	if err := mergeSort(s, left, mid, buf); err != nil {
		return err
	}
	if err := mergeSort(s, mid+1, right, buf); err != nil {
		return err
	}
	return merge(s, left, mid, right, buf)
}

func merge(s *Stepper, left, mid, right int, buf []int) error {
	if err := s.Err(); err != nil {
		return err
	}
	for i := left; i <= right; i++ {
		buf[i] = s.Value(i)
	}

	i, j, k := left, mid+1, left

	for i <= mid && j <= right {
		if err := s.Highlight(i, j); err != nil {
			return err
		}
		// <= favors the left half on ties, keeping the merge stable.
		if buf[i] <= buf[j] {
			if err := s.Write(k, buf[i]); err != nil {
				return err
			}
			i++
		} else {
			if err := s.Write(k, buf[j]); err != nil {
				return err
			}
			j++
		}
		k++
	}

	for i <= mid {
		if err := s.Highlight(i, noHighlight); err != nil {
			return err
		}
		if err := s.Write(k, buf[i]); err != nil {
			return err
		}
		i++
		k++
	}

	for j <= right {
		if err := s.Highlight(j, noHighlight); err != nil {
			return err
		}
		if err := s.Write(k, buf[j]); err != nil {
			return err
		}
		j++
		k++
	}

	s.ClearHighlight()
	return nil
}
