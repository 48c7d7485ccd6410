/*
Package ddns keeps a DNS "A" record synchronized with the caller's
current public IP address.

Usage will always start with [ddns.New],
which returns the DDNSClient implementation.
New requires the path to a config file holding the provider credentials,
the managed domain, and the last IP successfully written.
Each call to Run performs one full cycle:
load the config, resolve the public IP, and if it differs from the
recorded value, edit the domain's A record and persist the new value.
Additional client configuration options are listed in the docs for New.
*/
package ddns
