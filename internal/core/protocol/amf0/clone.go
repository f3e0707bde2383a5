// If you are AI: This file implements deep copying of value trees.
// Copying uses an explicit work list so nesting depth never grows the call stack.

package amf0

// cloneJob pairs a source composite with its freshly allocated copy.
type cloneJob struct {
	src Value
	dst Value
}

// Clone returns a deep copy of v sharing no composite with it.
// Clone(nil) is nil; scalars are returned as is.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	if !isComposite(v) {
		return v
	}

	root := emptyLike(v)
	jobs := []cloneJob{{src: v, dst: root}}
	for len(jobs) > 0 {
		job := jobs[len(jobs)-1]
		jobs = jobs[:len(jobs)-1]

		// child allocates the copy of c and queues it when it has children.
		child := func(c Value) Value {
			if c == nil || !isComposite(c) {
				return c
			}
			cp := emptyLike(c)
			jobs = append(jobs, cloneJob{src: c, dst: cp})
			return cp
		}

		entry := func(p Property) Property {
			return Property{Name: p.Name, Value: child(p.Value)}
		}

		switch src := job.src.(type) {
		case *Object:
			src.list.CloneInto(&job.dst.(*Object).list, entry)
		case *AssociativeArray:
			src.list.CloneInto(&job.dst.(*AssociativeArray).list, entry)
		case *Array:
			src.list.CloneInto(&job.dst.(*Array).list, child)
		}
	}
	return root
}

// emptyLike returns an empty composite of the same variant as v.
func emptyLike(v Value) Value {
	switch v.(type) {
	case *Object:
		return NewObject()
	case *AssociativeArray:
		return NewAssociativeArray()
	default:
		return NewArray()
	}
}
