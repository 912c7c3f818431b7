package stats

/*
This file defines all the metrics being collected. As new metrics are added
please follow this pattern.
*/

const (
	/************************* Scheduler metrics ****************************/
	/*
		number of scheduling requests received, scoped per policy
	*/
	SchedRequestsCounter = "requestsCounter"

	/*
		number of scheduling requests that produced a schedule
	*/
	SchedRequestsOkCounter = "requestsOkCounter"

	/*
		number of scheduling requests rejected for invalid input
	*/
	SchedInvalidRequestsCounter = "invalidRequestsCounter"

	/*
		number of scheduling requests that failed on a dependency cycle
	*/
	SchedCyclicRequestsCounter = "cyclicRequestsCounter"

	/*
		number of tasks placed into schedules
	*/
	SchedScheduledTasksCounter = "scheduledTasksCounter"

	/*
		amount of time it takes to compute one schedule
	*/
	SchedComputeLatency_ms = "computeLatency_ms"

	/************************* API metrics **********************************/
	/*
		number of http requests served
	*/
	ApiServeCounter = "serveCounter"

	/*
		number of http requests rejected by the rate limiter
	*/
	ApiThrottledCounter = "throttledCounter"

	/*
		number of http requests that returned an error response
	*/
	ApiServeErrCounter = "serveErrCounter"

	/*
		amount of time it takes to serve one http request
	*/
	ApiServeLatency_ms = "serveLatency_ms"
)
