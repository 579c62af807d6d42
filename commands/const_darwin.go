package commands

const (
	_etc = "/usr/local/etc/com.github.schoolops"
	_var = "/usr/local/var/com.github.schoolops"

	DEFAULT_WORKDIR = _var + "/student-sync"
	DEFAULT_CONFIG  = _etc + "/student-sync/config.json"
)
