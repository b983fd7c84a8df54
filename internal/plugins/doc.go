// Package plugins implements the cloud-config directives: users,
// set_user_password, write_files and set_hostname.
//
// NewRegistry binds the handlers to their directive kinds once per run. The
// handlers share state only through the run's cloudconfig.Session.
package plugins
