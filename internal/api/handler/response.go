package handler

// dataResponse is the success envelope: {"status": <code>, "data": ...}.
type dataResponse struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

// messageResponse is used for successes without a payload and, through the
// error handler, for every failure.
type messageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
