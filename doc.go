// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package student-sync synchronises student records from a Google Sheets roster to the user database
used for student sign-in.

student-sync is intended to be run by school staff from the command line at the start of a term (or
whenever the roster changes) and supports the following commands:

  - cohorts, to list the cohorts that can be synchronised and the roster worksheet for each
  - get, to download the roster for a set of cohorts as a TSV file
  - sync, to add or update the student records for a set of cohorts in the user database, optionally
    purging the existing records for the selected years first
*/
package sync
