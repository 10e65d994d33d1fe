package models

// Clone returns a copy that shares no slices with s.
func (s *FraudScore) Clone() *FraudScore {
	if s == nil {
		return nil
	}
	c := *s
	c.Factors = append([]FactorResult(nil), s.Factors...)
	return &c
}
