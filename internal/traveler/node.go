// Package traveler turns traveler information API JSON into flat records.
//
// Parsing is two passes: Decode builds an order-preserving tree, and
// Parser.Normalize walks it post-order (children before their parent),
// flattening each object as it is left.
package traveler

import (
	"iter"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// NodeKind is the JSON kind of a Node.
type NodeKind int

// Node kinds.
const (
	NodeNull NodeKind = iota
	NodeBool
	NodeNumber
	NodeString
	NodeObject
	NodeArray
)

// Node is one value of a decoded JSON document. Object members keep their
// document order.
type Node struct {
	Kind  NodeKind
	Value any // bool, int64, float64 or string for scalar kinds
	Keys  []string
	Items []*Node

	members map[string]*Node
}

// Member returns the object member named key.
func (n *Node) Member(key string) (*Node, bool) {
	m, ok := n.members[key]
	return m, ok
}

// Len returns the number of object members.
func (n *Node) Len() int { return len(n.Keys) }

// All iterates object members in document order. Nested objects are yielded
// as *Node, arrays as []any and scalars as their Go value, so a raw object
// can be passed straight to record.Flatten.
func (n *Node) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range n.Keys {
			if !yield(k, n.members[k].raw()) {
				return
			}
		}
	}
}

func (n *Node) raw() any {
	switch n.Kind {
	case NodeObject:
		return n
	case NodeArray:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = it.raw()
		}
		return out
	default:
		return n.Value
	}
}

// Decode validates text and builds its tree.
func Decode(text string) (*Node, error) {
	if !gjson.Valid(text) {
		return nil, eris.New("traveler: invalid JSON document")
	}
	return fromResult(gjson.Parse(text))
}

func fromResult(res gjson.Result) (*Node, error) {
	switch res.Type {
	case gjson.Null:
		return &Node{Kind: NodeNull}, nil
	case gjson.True:
		return &Node{Kind: NodeBool, Value: true}, nil
	case gjson.False:
		return &Node{Kind: NodeBool, Value: false}, nil
	case gjson.String:
		return &Node{Kind: NodeString, Value: res.Str}, nil
	case gjson.Number:
		v, err := number(res.Raw)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeNumber, Value: v}, nil
	}

	if res.IsArray() {
		n := &Node{Kind: NodeArray}
		var err error
		res.ForEach(func(_, item gjson.Result) bool {
			var child *Node
			child, err = fromResult(item)
			if err != nil {
				return false
			}
			n.Items = append(n.Items, child)
			return true
		})
		return n, err
	}

	n := &Node{Kind: NodeObject, members: make(map[string]*Node)}
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		var child *Node
		child, err = fromResult(value)
		if err != nil {
			return false
		}
		k := key.String()
		if _, dup := n.members[k]; !dup {
			n.Keys = append(n.Keys, k)
		}
		n.members[k] = child
		return true
	})
	return n, err
}

// number keeps integers as int64 and everything else as float64, so 1 and
// 1.0 infer as different field types.
func number(raw string) (any, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "traveler: parse number %q", raw)
	}
	return f, nil
}
