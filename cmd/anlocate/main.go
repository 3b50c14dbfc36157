/*
Copyright 2013 The Camlistore Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command anlocate builds and searches a front-compressed filename
// index: "build" scans a directory tree into a database, "search" and
// "stat" read one back.
package main

import (
	"github.com/kl/SearchAnywhere/internal/cmdmain"
)

func main() {
	cmdmain.Main()
}

const configFlagHelp = "Path to a JSON config file overriding build's defaults. See go4.org/jsonconfig."
