package usecase

import (
	"github.com/hireloop/hireloop-api/internal/entity"
)

// PipelineColumn is one Kanban board column.
type PipelineColumn struct {
	Stage    entity.Stage      `json:"stage"`
	Contacts []*entity.Contact `json:"contacts"`
}

// GroupByStage projects a flat contact list into board columns. Pure
// function of the stage values: a contact lands in exactly one column and
// column identity comes from the static stage enum, so membership can
// always be re-derived from current data.
func GroupByStage(contacts []*entity.Contact) []PipelineColumn {
	byStage := make(map[entity.Stage][]*entity.Contact, len(entity.StageOrder))
	for _, c := range contacts {
		byStage[c.Stage] = append(byStage[c.Stage], c)
	}

	columns := make([]PipelineColumn, 0, len(entity.StageOrder))
	for _, stage := range entity.StageOrder {
		group := byStage[stage]
		if group == nil {
			group = []*entity.Contact{}
		}
		columns = append(columns, PipelineColumn{Stage: stage, Contacts: group})
	}
	return columns
}
