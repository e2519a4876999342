// Package transform computes derived views of a family graph without
// modifying it.
//
// # Ranking
//
// [AssignRanks] assigns every node a generation depth by longest path from
// the roots. Persons and unions alternate: a couple at rank r has its union
// at r+1 and its children at r+2.
//
// [AlignSpouses] then lowers married-in partners, who have no parents in the
// data and therefore start at rank 0, onto the row of the person they married:
//
//	Before: kate (0) ──> william+kate (3)
//	After:  kate (2) ──> william+kate (3)
//
// # Usage
//
//	ranks, err := transform.AssignRanks(g)
//	if err != nil {
//	    return err // cycle
//	}
//	ranks = transform.AlignSpouses(g, ranks)
//
// Both functions return new maps, so each stage can be tested on its own.
package transform
