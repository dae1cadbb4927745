package valuation

import "settlement-quote/internal/model"

// Comparison prices both variants of a stream. Either failure fails the whole comparison.
func (c *Calculator) Comparison(lcp *model.LCPFormData, guaranteed *model.GuaranteedFormData) (*model.ComparisonResult, error) {
	lcpRes, err := c.LCP(lcp)
	if err != nil {
		return nil, err
	}
	gRes, err := c.Guaranteed(guaranteed)
	if err != nil {
		return nil, err
	}
	return &model.ComparisonResult{LCP: lcpRes, Guaranteed: gRes}, nil
}
