package merkle

// The tree is a complete binary tree stored in a flat array. Index 0 is the
// root and the children of i live at 2i+1 and 2i+2:
//
//	        0
//	      /   \
//	     1     2
//	    / \   / \
//	   3   4 5   6

// LeftChildIndex returns the array position of the left child of i.
func LeftChildIndex(i int) int {
	return 2*i + 1
}

// RightChildIndex returns the array position of the right child of i.
func RightChildIndex(i int) int {
	return 2*i + 2
}

// ParentIndex returns the parent of i. The root has no parent.
func ParentIndex(i int) (int, bool) {
	if i <= 0 {
		return 0, false
	}
	return (i - 1) / 2, true
}

// SiblingIndex returns the other child of i's parent. The root has no sibling.
func SiblingIndex(i int) (int, bool) {
	if i <= 0 {
		return 0, false
	}
	if i%2 == 0 {
		return i - 1, true
	}
	return i + 1, true
}

func IsTreeNode(i, treeSize int) bool {
	return i >= 0 && i < treeSize
}

func IsInternalNode(i, treeSize int) bool {
	return i >= 0 && IsTreeNode(LeftChildIndex(i), treeSize)
}

func IsLeafNode(i, treeSize int) bool {
	return IsTreeNode(i, treeSize) && !IsInternalNode(i, treeSize)
}

// TreeSize is the array length of a tree with leafCount leaves.
func TreeSize(leafCount int) int {
	if leafCount <= 0 {
		return 0
	}
	return 2*leafCount - 1
}
