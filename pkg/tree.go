package huffman

import (
	"container/heap"
	"fmt"
)

// HuffmanNode is a node of either the weighted encoding tree or the decode
// tree rebuilt from a code table. NextNodes[0] is the '0' branch. Weight and
// seq are only set on encoding tree nodes; decode tree nodes leave them zero.
type HuffmanNode struct {
	NextNodes [2]*HuffmanNode
	Symbol    string
	Leaf      bool
	Weight    int
	seq       int
}

// nodeQueue is a min-heap on (Weight, seq). seq is the creation order, so
// equal weights pop first-created first.
type nodeQueue []*HuffmanNode

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].Weight != q[j].Weight {
		return q[i].Weight < q[j].Weight
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*HuffmanNode)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return node
}

// BuildTree merges the two lightest nodes until one remains. The first node
// popped becomes the '0' child. An empty table yields a nil root; a table
// with one symbol yields a leaf root.
func BuildTree(freqs *FrequencyTable) (*HuffmanNode, error) {
	if freqs == nil || freqs.Len() == 0 {
		return nil, nil
	}

	queue := make(nodeQueue, 0, freqs.Len())
	seq := 0
	for _, symbol := range freqs.Symbols {
		count := freqs.Counts[symbol]
		if count <= 0 {
			return nil, fmt.Errorf("symbol %q has non-positive count %d", symbol, count)
		}
		queue = append(queue, &HuffmanNode{Symbol: symbol, Leaf: true, Weight: count, seq: seq})
		seq++
	}
	heap.Init(&queue)

	for queue.Len() > 1 {
		left := heap.Pop(&queue).(*HuffmanNode)
		right := heap.Pop(&queue).(*HuffmanNode)
		parent := &HuffmanNode{
			NextNodes: [2]*HuffmanNode{left, right},
			Weight:    left.Weight + right.Weight,
			seq:       seq,
		}
		seq++
		heap.Push(&queue, parent)
	}

	root := heap.Pop(&queue).(*HuffmanNode)
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Huffman tree built: %d leaves, weight %d", freqs.Len(), root.Weight)
		logger.Info(message, "tree")
	}
	return root, nil
}
