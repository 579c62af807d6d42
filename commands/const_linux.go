package commands

const (
	_etc = "/usr/local/etc/student-sync"
	_var = "/usr/local/var/student-sync"

	DEFAULT_WORKDIR = _var
	DEFAULT_CONFIG  = _etc + "/config.json"
)
