package personnel

type KindCount struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type OverviewResponse struct {
	Students KindCount `json:"students"`
	Teachers KindCount `json:"teachers"`
	Parents  KindCount `json:"parents"`
	Classes  int64     `json:"classes"`
}

type BucketCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type DistributionResponse struct {
	Kind     Kind          `json:"kind"`
	ByClass  []BucketCount `json:"byClass"`
	ByStatus []BucketCount `json:"byStatus"`
}
