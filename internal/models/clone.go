package models

// Deep copies for store implementations that must not hand out aliased
// pointers (the in-memory stores, transactional snapshots).

func ptrCopy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (o *Opportunity) Clone() *Opportunity {
	if o == nil {
		return nil
	}
	c := *o
	c.ExpectedValue = ptrCopy(o.ExpectedValue)
	c.ExpectedCloseDate = ptrCopy(o.ExpectedCloseDate)
	c.CustomerID = ptrCopy(o.CustomerID)
	c.LeadID = ptrCopy(o.LeadID)
	c.Activities = append([]Activity(nil), o.Activities...)
	return &c
}

func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}
	c := *l
	c.BusinessType = ptrCopy(l.BusinessType)
	c.KitchenSize = ptrCopy(l.KitchenSize)
	c.EmployeeCount = ptrCopy(l.EmployeeCount)
	c.BranchCount = ptrCopy(l.BranchCount)
	c.IsChain = ptrCopy(l.IsChain)
	c.EstimatedVolume = ptrCopy(l.EstimatedVolume)
	c.PainStaffShortage = ptrCopy(l.PainStaffShortage)
	c.PainHighCosts = ptrCopy(l.PainHighCosts)
	c.PainFoodWaste = ptrCopy(l.PainFoodWaste)
	c.PainQualityInconsistency = ptrCopy(l.PainQualityInconsistency)
	c.PainTimePressure = ptrCopy(l.PainTimePressure)
	c.PainSupplierQuality = ptrCopy(l.PainSupplierQuality)
	c.PainUnreliableDelivery = ptrCopy(l.PainUnreliableDelivery)
	c.PainPoorService = ptrCopy(l.PainPoorService)
	c.PainNotes = ptrCopy(l.PainNotes)
	return &c
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	out := *c
	out.OriginalLeadID = ptrCopy(c.OriginalLeadID)
	out.BusinessType = ptrCopy(c.BusinessType)
	out.KitchenSize = ptrCopy(c.KitchenSize)
	out.EmployeeCount = ptrCopy(c.EmployeeCount)
	out.BranchCount = ptrCopy(c.BranchCount)
	out.IsChain = ptrCopy(c.IsChain)
	out.EstimatedVolume = ptrCopy(c.EstimatedVolume)
	out.PainStaffShortage = ptrCopy(c.PainStaffShortage)
	out.PainHighCosts = ptrCopy(c.PainHighCosts)
	out.PainFoodWaste = ptrCopy(c.PainFoodWaste)
	out.PainQualityInconsistency = ptrCopy(c.PainQualityInconsistency)
	out.PainTimePressure = ptrCopy(c.PainTimePressure)
	out.PainSupplierQuality = ptrCopy(c.PainSupplierQuality)
	out.PainUnreliableDelivery = ptrCopy(c.PainUnreliableDelivery)
	out.PainPoorService = ptrCopy(c.PainPoorService)
	out.PainNotes = ptrCopy(c.PainNotes)
	return &out
}
