package scheduling_test

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// counterStub feeds fixed counts to the validators.
type counterStub struct {
	individualUsed   int
	individualFuture int
	academicUsed     int
	academicFuture   int
	courseUsed       int
	courseFuture     int
	trialCount       int
	groupMonth       int
	err              error
}

func (c *counterStub) CountIndividualCircleUsed(context.Context, uuid.UUID) (int, error) {
	return c.individualUsed, c.err
}

func (c *counterStub) CountIndividualCircleFutureScheduled(context.Context, uuid.UUID) (int, error) {
	return c.individualFuture, c.err
}

func (c *counterStub) CountAcademicSubscriptionUsed(context.Context, uuid.UUID) (int, error) {
	return c.academicUsed, c.err
}

func (c *counterStub) CountAcademicSubscriptionFutureScheduled(context.Context, uuid.UUID) (int, error) {
	return c.academicFuture, c.err
}

func (c *counterStub) CountCourseUsed(context.Context, uuid.UUID) (int, error) {
	return c.courseUsed, c.err
}

func (c *counterStub) CountCourseFutureScheduled(context.Context, uuid.UUID) (int, error) {
	return c.courseFuture, c.err
}

func (c *counterStub) CountTrialSessions(context.Context, uuid.UUID) (int, error) {
	return c.trialCount, c.err
}

func (c *counterStub) CountGroupCircleMonth(context.Context, uuid.UUID, time.Time) (int, error) {
	return c.groupMonth, c.err
}
