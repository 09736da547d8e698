package metadata

/** @brief Invoked on a worker with the task's input. Required. */
type JobStart func(input interface{}) (interface{}, error)

/** @brief Invoked on the worker with the result of a successful job. Optional. */
type JobOnComplete func(result interface{})

/** @brief Invoked on the worker with the error of a failed job. Optional. */
type JobOnFailure func(err error)

/**
 * @brief Describes a job to be run by the job system.
 */
type JobTask struct {
	/** @brief Data passed to OnStart. */
	InputParams interface{}
	OnStart     JobStart
	OnComplete  JobOnComplete
	OnFailure   JobOnFailure
	/** @brief Called after OnComplete or OnFailure, whatever the outcome. Optional. */
	OnCompletionCallback func()
}
