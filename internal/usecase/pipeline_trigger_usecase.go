package usecase

import "context"

// Trigger requests an out-of-band pipeline run. Implemented by the
// scheduler; the handler never talks to the pipeline directly.
type Trigger interface {
	TriggerNow()
}

type PipelineTriggerUsecase interface {
	Trigger(ctx context.Context) error
}

type PipelineTrigger struct {
	trigger Trigger
}

func NewPipelineTriggerUsecase(trigger Trigger) *PipelineTrigger {
	return &PipelineTrigger{trigger: trigger}
}

func (u *PipelineTrigger) Trigger(ctx context.Context) error {
	if u == nil || u.trigger == nil {
		return ErrInternal
	}
	_ = ctx
	u.trigger.TriggerNow()
	return nil
}
